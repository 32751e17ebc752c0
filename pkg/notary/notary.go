// Package notary models the external digital-notary collaborator
// (§4.2 of SPEC_FULL.md) and ships one concrete, ed25519-backed
// implementation so the rest of the core is exercisable end to end.
package notary

import (
	"crypto/ed25519"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/language"
)

// Notary is the shape the core depends on. Key material, the signing
// algorithm, and the digest function are this collaborator's concern,
// not the core's.
type Notary interface {
	// Sign wraps component in a notarized document and signs it under
	// this notary's key. previous may be the zero Citation (NONE).
	Sign(component *language.Component, previous identity.Citation) (*language.NotarizedDocument, error)

	// Cite computes the citation of an already-notarized document.
	Cite(doc *language.NotarizedDocument) (identity.Citation, error)

	// CitationMatches recomputes the digest of doc and compares it to
	// citation's digest in constant time.
	CitationMatches(citation identity.Citation, doc *language.NotarizedDocument) bool

	// DocumentIsValid verifies doc's signature under the public key
	// named by certificate (certificate may be doc itself, for the
	// self-signed/bootstrap case).
	DocumentIsValid(doc, certificate *language.NotarizedDocument) bool

	// GetCitation returns the citation of this notary's own certificate.
	GetCitation() identity.Citation

	// GetAccountID returns the account tag this notary signs on behalf of.
	GetAccountID() identity.Tag
}

const protocolVersion = "v1"

// Ed25519Notary is the reference Notary implementation. Key material
// is held encrypted at rest via keySeal, mirroring the teacher's
// CertAuthority pattern of sealing private key bytes before
// persistence, adapted from RSA/x509 to ed25519 (see DESIGN.md).
type Ed25519Notary struct {
	mu         sync.RWMutex
	accountID  identity.Tag
	public     ed25519.PublicKey
	private    ed25519.PrivateKey
	seal       *keySeal
	ownCert    *language.NotarizedDocument
	ownCitation identity.Citation
}

// GenerateEd25519Notary creates a fresh ed25519 keypair, builds and
// self-signs this account's root certificate, and seals the private
// key with sealKey (a caller-supplied 32-byte key, e.g. derived from
// an operator passphrase).
func GenerateEd25519Notary(accountID identity.Tag, sealKey []byte) (*Ed25519Notary, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	seal, err := newKeySeal(sealKey)
	if err != nil {
		return nil, err
	}

	n := &Ed25519Notary{
		accountID: accountID,
		public:    pub,
		private:   priv,
		seal:      seal,
	}

	if err := n.selfSign(); err != nil {
		return nil, err
	}
	return n, nil
}

// selfSign builds this notary's root certificate component and signs
// it with Certificate left as NONE, which the validation engine (§4.4)
// treats as the self-signed/bootstrap terminal case.
func (n *Ed25519Notary) selfSign() error {
	tag := identity.NewTag()
	version, _ := identity.ParseVersion("v1")

	component := language.NewCatalog(map[string]*language.Component{
		"account":   language.NewText(string(n.accountID)),
		"publicKey": language.NewText(hex.EncodeToString(n.public)),
		"protocol":  language.NewText(protocolVersion),
	}, &language.Parameters{Tag: tag, Version: version})

	doc := &language.NotarizedDocument{
		Component:   component,
		Protocol:    protocolVersion,
		Timestamp:   time.Now().Unix(),
		Certificate: identity.Citation{}, // NONE: self-signed
		Previous:    identity.Citation{}, // NONE: no predecessor
	}

	sig, err := n.signBytes(doc)
	if err != nil {
		return err
	}
	doc.Signature = sig

	citation, err := n.Cite(doc)
	if err != nil {
		return err
	}

	n.ownCert = doc
	n.ownCitation = citation
	return nil
}

func (n *Ed25519Notary) signBytes(doc *language.NotarizedDocument) (string, error) {
	b, err := doc.SignableBytes()
	if err != nil {
		return "", err
	}
	sig := ed25519.Sign(n.private, b)
	return hex.EncodeToString(sig), nil
}

// Sign implements Notary.
func (n *Ed25519Notary) Sign(component *language.Component, previous identity.Citation) (*language.NotarizedDocument, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	doc := &language.NotarizedDocument{
		Component:   component,
		Protocol:    protocolVersion,
		Timestamp:   time.Now().Unix(),
		Certificate: n.ownCitation,
		Previous:    previous,
	}
	sig, err := n.signBytes(doc)
	if err != nil {
		return nil, err
	}
	doc.Signature = sig
	return doc, nil
}

// Cite implements Notary.
func (n *Ed25519Notary) Cite(doc *language.NotarizedDocument) (identity.Citation, error) {
	digest, err := language.Digest(doc)
	if err != nil {
		return identity.Citation{}, err
	}
	params := doc.Component.GetParameters()
	if params == nil {
		return identity.Citation{}, fmt.Errorf("cite: document component carries no parameters")
	}
	ts := doc.Timestamp
	return identity.Citation{
		Protocol: doc.Protocol,
		Tag:      params.Tag,
		Version:  params.Version,
		Digest:   digest,
		Timestamp: &ts,
	}, nil
}

// CitationMatches implements Notary.
func (n *Ed25519Notary) CitationMatches(citation identity.Citation, doc *language.NotarizedDocument) bool {
	digest, err := language.Digest(doc)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(citation.Digest)) == 1
}

// DocumentIsValid implements Notary. The certificate's public key is
// read from certificate.Component's "publicKey" value; this is valid
// both for ordinary certificates and for the self-signed case where
// certificate == doc.
func (n *Ed25519Notary) DocumentIsValid(doc, certificate *language.NotarizedDocument) bool {
	keyComponent := certificate.Component.GetValue("publicKey")
	if keyComponent == nil || keyComponent.Kind != language.KindText {
		return false
	}
	pubBytes, err := hex.DecodeString(keyComponent.Text)
	if err != nil || len(pubBytes) != ed25519.PublicKeySize {
		return false
	}
	sigBytes, err := hex.DecodeString(doc.Signature)
	if err != nil {
		return false
	}
	signable, err := doc.SignableBytes()
	if err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubBytes), signable, sigBytes)
}

// GetCitation implements Notary.
func (n *Ed25519Notary) GetCitation() identity.Citation {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ownCitation
}

// GetAccountID implements Notary.
func (n *Ed25519Notary) GetAccountID() identity.Tag {
	return n.accountID
}

// OwnCertificate returns this notary's self-signed root certificate
// document, for the one-time bootstrap commit into the repository's
// certificate namespace.
func (n *Ed25519Notary) OwnCertificate() *language.NotarizedDocument {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ownCert
}

// SealPrivateKey returns the encrypted form of this notary's private
// key, suitable for persisting alongside the account record.
func (n *Ed25519Notary) SealPrivateKey() ([]byte, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.seal.encrypt(n.private)
}

// LoadEd25519Notary reconstructs a notary from a previously sealed
// private key and its existing self-signed certificate.
func LoadEd25519Notary(accountID identity.Tag, sealKey []byte, sealedKey []byte, ownCert *language.NotarizedDocument) (*Ed25519Notary, error) {
	seal, err := newKeySeal(sealKey)
	if err != nil {
		return nil, err
	}
	rawKey, err := seal.decrypt(sealedKey)
	if err != nil {
		return nil, fmt.Errorf("unseal private key: %w", err)
	}
	if len(rawKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unsealed key has wrong size %d", len(rawKey))
	}
	priv := ed25519.PrivateKey(rawKey)

	n := &Ed25519Notary{
		accountID: accountID,
		public:    priv.Public().(ed25519.PublicKey),
		private:   priv,
		seal:      seal,
		ownCert:   ownCert,
	}
	citation, err := n.Cite(ownCert)
	if err != nil {
		return nil, err
	}
	n.ownCitation = citation
	return n, nil
}
