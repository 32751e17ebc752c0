package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cuemby/nebula/pkg/identity"
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Send, queue, and receive messages",
}

func init() {
	sendMessageCmd.Flags().StringP("file", "f", "", "YAML file describing the message content (required)")
	sendMessageCmd.Flags().String("target", "", "Recipient account tag (required)")
	_ = sendMessageCmd.MarkFlagRequired("file")
	_ = sendMessageCmd.MarkFlagRequired("target")

	queueMessageCmd.Flags().StringP("file", "f", "", "YAML file describing the message content (required)")
	queueMessageCmd.Flags().String("queue", "", "Queue identifier (required)")
	_ = queueMessageCmd.MarkFlagRequired("file")
	_ = queueMessageCmd.MarkFlagRequired("queue")

	receiveMessageCmd.Flags().String("queue", "", "Queue identifier (required)")
	_ = receiveMessageCmd.MarkFlagRequired("queue")

	messageCmd.AddCommand(sendMessageCmd)
	messageCmd.AddCommand(queueMessageCmd)
	messageCmd.AddCommand(receiveMessageCmd)
}

var sendMessageCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to another account's SEND_QUEUE",
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
		target, _ := cmd.Flags().GetString("target")
		return c.SendMessage(context.Background(), identity.Tag(target), component)
	},
}

var queueMessageCmd = &cobra.Command{
	Use:   "queue",
	Short: "Enqueue a message onto an arbitrary queue",
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
		queue, _ := cmd.Flags().GetString("queue")
		return c.QueueMessage(context.Background(), queue, component)
	},
}

var receiveMessageCmd = &cobra.Command{
	Use:   "receive",
	Short: "Dequeue one message from a queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := buildClient(cmd)
		if err != nil {
			return err
		}
		queue, _ := cmd.Flags().GetString("queue")
		component, ok, err := c.ReceiveMessage(context.Background(), queue)
		if err != nil {
			return err
		}
		if !ok {
			cmd.PrintErrln("queue is empty")
			return nil
		}
		return printComponent(component)
	},
}
