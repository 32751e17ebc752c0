package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/repository/local"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new account and bootstrap its root certificate",
	Long: `init generates a fresh ed25519 keypair, self-signs this
account's root certificate, persists the sealed private key under
--root, and commits the certificate into the local repository's
certificate namespace so the account can validate its own credentials
and documents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		accountFlag, _ := cmd.Flags().GetString("account")
		passphrase, _ := cmd.Flags().GetString("passphrase")
		root, _ := cmd.Flags().GetString("root")

		if accountFlag == "" {
			return fmt.Errorf("--account is required")
		}
		account := identity.Tag(accountFlag)

		repoRoot := root
		if repoRoot == "" {
			defaultRoot, err := local.DefaultRoot()
			if err != nil {
				return fmt.Errorf("resolve default repository root: %w", err)
			}
			repoRoot = defaultRoot
		}

		n, err := createAccount(repoRoot, account, passphrase)
		if err != nil {
			return err
		}

		repo, err := local.New(repoRoot)
		if err != nil {
			return fmt.Errorf("open local repository: %w", err)
		}
		if err := bootstrapCertificate(context.Background(), repo, n); err != nil {
			return err
		}

		cmd.Printf("account %s created at %s\n", account, repoRoot)
		return nil
	},
}
