package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oppaas/procd/pkg/procpb"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <uuid>",
		Short: "Get status of the process with the given UUID",
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

			resp, err := client.GetStatus(context.Background(), &procpb.StatusRequest{ID: id})
			if err != nil {
				return err
			}
			fmt.Println(formatStatus(resp.Status))
			return nil
		},
	}
}

// formatStatus renders the wire ExitStatus the way spec.md §6 specifies:
// "running", "exited (code N)", or "exited (signal N)".
func formatStatus(st procpb.ExitStatus) string {
	switch st.Kind {
	case procpb.ExitStatusCode:
		return fmt.Sprintf("exited (code %d)", st.Value)
	case procpb.ExitStatusSignal:
		return fmt.Sprintf("exited (signal %d)", st.Value)
	default:
		return "running"
	}
}
