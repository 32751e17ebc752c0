package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/language"
	"github.com/cuemby/nebula/pkg/notary"
	"github.com/cuemby/nebula/pkg/repository"
	"github.com/cuemby/nebula/pkg/security"
)

// accountRecord is the on-disk form of one local identity: the sealed
// private key alongside the self-signed root certificate it signs
// under, persisted at <root>/accounts/<tag>.json.
type accountRecord struct {
	AccountID   identity.Tag `json:"accountId"`
	SealedKey   []byte       `json:"sealedKey"`
	Certificate []byte       `json:"certificate"`
}

// sealKeyFromPassphrase derives a 32-byte AES key from an operator
// passphrase so the same passphrase reopens the account on a later
// run.
func sealKeyFromPassphrase(passphrase string) []byte {
	return security.DeriveSealKey(passphrase)
}

func accountPath(root string, account identity.Tag) string {
	return filepath.Join(root, "accounts", string(account)+".json")
}

// createAccount generates a fresh notary for account, persists it
// sealed under passphrase, and returns it. It fails if an account
// record already exists at that path.
func createAccount(root string, account identity.Tag, passphrase string) (*notary.Ed25519Notary, error) {
	path := accountPath(root, account)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("account %s already exists at %s", account, path)
	}

	n, err := notary.GenerateEd25519Notary(account, sealKeyFromPassphrase(passphrase))
	if err != nil {
		return nil, fmt.Errorf("generate notary: %w", err)
	}

	if err := saveAccount(root, n); err != nil {
		return nil, err
	}
	return n, nil
}

func saveAccount(root string, n *notary.Ed25519Notary) error {
	sealed, err := n.SealPrivateKey()
	if err != nil {
		return fmt.Errorf("seal private key: %w", err)
	}
	certBlob, err := language.Serialize(n.OwnCertificate())
	if err != nil {
		return fmt.Errorf("serialize certificate: %w", err)
	}

	record := accountRecord{AccountID: n.GetAccountID(), SealedKey: sealed, Certificate: certBlob}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal account record: %w", err)
	}

	path := accountPath(root, n.GetAccountID())
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create account directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// loadAccount reconstructs a previously created notary from its
// on-disk record.
func loadAccount(root string, account identity.Tag, passphrase string) (*notary.Ed25519Notary, error) {
	path := accountPath(root, account)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read account %s: %w", account, err)
	}

	var record accountRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse account %s: %w", account, err)
	}

	ownCert, err := language.ParseDocument(record.Certificate)
	if err != nil {
		return nil, fmt.Errorf("parse account %s certificate: %w", account, err)
	}

	return notary.LoadEd25519Notary(record.AccountID, sealKeyFromPassphrase(passphrase), record.SealedKey, ownCert)
}

// bootstrapCertificate commits n's own root certificate into repo's
// certificate namespace if it isn't already there, so validation can
// resolve credentials and documents this notary signs.
func bootstrapCertificate(ctx context.Context, repo repository.Repository, n *notary.Ed25519Notary) error {
	certID, err := identity.ExtractID(n.GetCitation())
	if err != nil {
		return fmt.Errorf("extract own certificate id: %w", err)
	}
	ok, err := repo.Certificate().Exists(ctx, certID)
	if err != nil {
		return fmt.Errorf("check own certificate: %w", err)
	}
	if ok {
		return nil
	}
	blob, err := language.Serialize(n.OwnCertificate())
	if err != nil {
		return fmt.Errorf("serialize own certificate: %w", err)
	}
	if err := repo.Certificate().Create(ctx, certID, blob); err != nil && !repository.IsKind(err, repository.KindAlreadyExists) {
		return fmt.Errorf("commit own certificate: %w", err)
	}
	return nil
}
