package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oppaas/procd/pkg/procpb"
)

func execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <argv...>",
		Short: "Execute a process",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newClient()
			if err != nil {
				return err
			}
			defer closeFn()

			resp, err := client.Exec(context.Background(), &procpb.ExecRequest{Args: args})
			if err != nil {
				return err
			}
			fmt.Println(resp.ID.String())
			return nil
		},
	}
}
