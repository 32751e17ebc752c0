package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/nebula/pkg/client"
	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/notary"
	"github.com/cuemby/nebula/pkg/repository"
	"github.com/cuemby/nebula/pkg/repository/local"
	"github.com/cuemby/nebula/pkg/repository/remote"
)

// buildClient assembles a Client from the --root/--remote/--account/
// --passphrase persistent flags: a local or remote repository binding,
// the caller's previously-created notary, and the standard cache set.
func buildClient(cmd *cobra.Command) (*client.Client, repository.Repository, *notary.Ed25519Notary, error) {
	root, _ := cmd.Flags().GetString("root")
	remoteURL, _ := cmd.Flags().GetString("remote")
	accountFlag, _ := cmd.Flags().GetString("account")
	passphrase, _ := cmd.Flags().GetString("passphrase")

	if accountFlag == "" {
		return nil, nil, nil, fmt.Errorf("--account is required")
	}
	account := identity.Tag(accountFlag)

	repoRoot := root
	if repoRoot == "" {
		defaultRoot, err := local.DefaultRoot()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("resolve default repository root: %w", err)
		}
		repoRoot = defaultRoot
	}

	n, err := loadAccount(repoRoot, account, passphrase)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load account %s: %w", account, err)
	}

	var repo repository.Repository
	if remoteURL != "" {
		repo = remote.New(remoteURL, n)
	} else {
		localRepo, err := local.New(repoRoot)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open local repository: %w", err)
		}
		repo = localRepo
	}

	return client.New(repo, n, nil), repo, n, nil
}
