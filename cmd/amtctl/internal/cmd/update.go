package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <index> <record>",
		Short: "Replace the record at index with a hex encoded record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			record, err := decodeRecord(args[1])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				old, proof, err := s.log.Update(index, record)
				if err != nil {
					return err
				}
				if err := s.update(old, record, proof); err != nil {
					return err
				}
				if err := s.commit(ctx); err != nil {
					return err
				}
				s.logger.Infow("updated record", "id", s.id, "index", index, "root", s.tree.Root())
				fmt.Fprintf(cmd.OutOrStdout(), "%d %v\n", index, s.tree.Root())
				return nil
			})
		},
	}
}
