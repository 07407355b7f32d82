package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oppaas/procd/pkg/procpb"
)

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <uuid>",
		Short: "Stop the process with the given UUID. If the process has already finished, this has no effect.",
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

			_, err = client.Stop(context.Background(), &procpb.StopRequest{ID: id})
			return err
		},
	}
}
