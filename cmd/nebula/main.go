// Command nebula is the CLI surface over the Client API (§4.6):
// account bootstrap, the HTTP service, and notarize/commit/checkout/
// queue operations against a local or remote repository.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuemby/nebula/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nebula",
	Short: "Nebula - notarized, content-addressed document repository",
	Long: `Nebula is a content-addressed, notarized document repository
with client-side caching, versioning, certificate-chain validation,
and message queues, reachable either as an embedded local store or
over HTTP against a running nebula service.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"nebula version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("root", "", "Local repository root (defaults to ~/.nebula)")
	rootCmd.PersistentFlags().String("remote", "", "Remote service base URL (talks to the local repository root when unset)")
	rootCmd.PersistentFlags().String("account", "", "Account tag to operate as (required except for init)")
	rootCmd.PersistentFlags().String("passphrase", "", "Passphrase sealing/unsealing this account's private key")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(documentCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(eventCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}
