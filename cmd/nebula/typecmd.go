package main

import (
	"context"

	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Commit and retrieve type definitions",
}

func init() {
	commitTypeCmd.Flags().StringP("file", "f", "", "YAML file describing the type (required)")
	_ = commitTypeCmd.MarkFlagRequired("file")

	typeCmd.AddCommand(commitTypeCmd)
	typeCmd.AddCommand(retrieveTypeCmd)
}

var commitTypeCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit a new type definition",
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
		citation, err := c.CommitType(context.Background(), component)
		if err != nil {
			return err
		}
		return printCitation(citation)
	},
}

var retrieveTypeCmd = &cobra.Command{
	Use:   "retrieve <citation>",
	Short: "Retrieve a committed type definition by citation",
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
		component, ok, err := c.RetrieveType(context.Background(), citation)
		if err != nil {
			return err
		}
		if !ok {
			cmd.PrintErrln("type not found")
			return nil
		}
		return printComponent(component)
	},
}
