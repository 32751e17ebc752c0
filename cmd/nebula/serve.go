package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/nebula/pkg/api"
	"github.com/cuemby/nebula/pkg/cache"
	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/log"
	"github.com/cuemby/nebula/pkg/repository/local"
	"github.com/cuemby/nebula/pkg/validate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP repository service over a local repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountFlag, _ := cmd.Flags().GetString("account")
		passphrase, _ := cmd.Flags().GetString("passphrase")
		root, _ := cmd.Flags().GetString("root")
		addr, _ := cmd.Flags().GetString("addr")

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

		repo, err := local.New(repoRoot)
		if err != nil {
			return fmt.Errorf("open local repository: %w", err)
		}

		n, err := loadAccount(repoRoot, account, passphrase)
		if err != nil {
			return fmt.Errorf("load account %s: %w", account, err)
		}

		engine := validate.New(repo, n, cache.New("certificate", cache.CertificateCapacity))
		srv := api.NewServer(repo, n, engine)

		log.WithComponent("serve").Info().Str("addr", addr).Str("root", repoRoot).Msg("starting nebula service")
		return srv.Start(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
