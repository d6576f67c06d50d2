package cmd

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the tree's commitment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(_ context.Context, s *session) error {
				state := s.tree.State()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "id:          %v\n", s.id)
				fmt.Fprintf(out, "hash:        %s\n", s.conf.Hash)
				fmt.Fprintf(out, "record size: %d\n", s.tree.RecordSize())
				fmt.Fprintf(out, "size:        %d\n", state.Size)
				fmt.Fprintf(out, "root:        %v\n", state.Root)
				fmt.Fprintf(out, "last record: %s\n", hex.EncodeToString(state.LastRecord))
				return nil
			})
		},
	}
}
