package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oppaas/procd/pkg/procpb"
)

func logsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs <uuid>",
		Short: "Stream logs of the process with the given UUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("procc: invalid uuid %q: %w", args[0], err)
			}

			client, closeFn, err := newClient()
			if err != nil {
				return err
			}
			defer closeFn()

			stream, err := client.GetLogs(context.Background(), &procpb.LogsRequest{ID: id})
			if err != nil {
				return err
			}

			for {
				resp, err := stream.Recv()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				for _, line := range resp.Lines {
					fmt.Println(string(line))
				}
			}
		},
	}
}
