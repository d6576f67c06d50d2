package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAppendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append <record>",
		Short: "Append a hex encoded record to the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := decodeRecord(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				index := s.log.Size()
				proof, err := s.log.Append(record)
				if err != nil {
					return err
				}
				if err := s.insert(record, proof); err != nil {
					return err
				}
				if err := s.commit(ctx); err != nil {
					return err
				}
				s.logger.Infow("appended record", "id", s.id, "index", index, "root", s.tree.Root())
				fmt.Fprintf(cmd.OutOrStdout(), "%d %v\n", index, s.tree.Root())
				return nil
			})
		},
	}
}
