package main

import (
	"context"

	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Publish events to EVENT_QUEUE",
}

func init() {
	publishEventCmd.Flags().StringP("file", "f", "", "YAML file describing the event content (required)")
	_ = publishEventCmd.MarkFlagRequired("file")

	eventCmd.AddCommand(publishEventCmd)
}

var publishEventCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish an event",
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
		return c.PublishEvent(context.Background(), component)
	},
}
