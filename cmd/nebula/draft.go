package main

import (
	"context"

	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Save, retrieve, and discard drafts",
}

func init() {
	saveDraftCmd.Flags().StringP("file", "f", "", "YAML file describing the draft content (required)")
	_ = saveDraftCmd.MarkFlagRequired("file")

	draftCmd.AddCommand(saveDraftCmd)
	draftCmd.AddCommand(retrieveDraftCmd)
	draftCmd.AddCommand(discardDraftCmd)
}

var saveDraftCmd = &cobra.Command{
	Use:   "save",
	Short: "Save (or overwrite) a draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		component, err := readComponent(file)
		if err != nil {
			return err
		}
		citation, err := c.SaveDraft(context.Background(), component)
		if err != nil {
			return err
		}
		return printCitation(citation)
	},
}

var retrieveDraftCmd = &cobra.Command{
	Use:   "retrieve <citation>",
	Short: "Retrieve a draft by citation",
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
		component, ok, err := c.RetrieveDraft(context.Background(), citation)
		if err != nil {
			return err
		}
		if !ok {
			cmd.PrintErrln("draft not found")
			return nil
		}
		return printComponent(component)
	},
}

var discardDraftCmd = &cobra.Command{
	Use:   "discard <citation>",
	Short: "Discard a draft",
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
		return c.DiscardDraft(context.Background(), citation)
	},
}
