package main

import (
	"context"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Commit, retrieve, and checkout documents",
}

func init() {
	commitDocumentCmd.Flags().StringP("file", "f", "", "YAML file describing the draft content (required)")
	_ = commitDocumentCmd.MarkFlagRequired("file")

	checkoutDocumentCmd.Flags().Int("level", 0, "Version level to bump (0 means increment the last component)")

	documentCmd.AddCommand(commitDocumentCmd)
	documentCmd.AddCommand(retrieveDocumentCmd)
	documentCmd.AddCommand(checkoutDocumentCmd)
}

var commitDocumentCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit a new document from a draft file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		draft, err := readComponent(file)
		if err != nil {
			return err
		}
		citation, err := c.CommitDocument(context.Background(), draft)
		if err != nil {
			return err
		}
		return printCitation(citation)
	},
}

var retrieveDocumentCmd = &cobra.Command{
	Use:   "retrieve <citation>",
	Short: "Retrieve a committed document by citation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		citation, err := parseCitation(args[0])
		if err != nil {
			return err
		}
		component, ok, err := c.RetrieveDocument(context.Background(), citation)
		if err != nil {
			return err
		}
		if !ok {
			cmd.PrintErrln("document not found")
			return nil
		}
		return printComponent(component)
	},
}

var checkoutDocumentCmd = &cobra.Command{
	Use:   "checkout <citation>",
	Short: "Check out a committed document as a new draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		citation, err := parseCitation(args[0])
		if err != nil {
			return err
		}
		var level *int
		if cmd.Flags().Changed("level") {
			l, _ := cmd.Flags().GetInt("level")
			level = &l
		}
		draftCitation, err := c.CheckoutDocument(context.Background(), citation, level)
		if err != nil {
			return err
		}
		return printCitation(draftCitation)
	},
}
