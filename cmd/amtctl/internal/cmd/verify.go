package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var ErrNotMember = errors.New("record is not in the tree at that index")

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <index> [record]",
		Short: "Check that a record is in the tree at index",
		Long: `Check that a record is in the tree at index. Without a record the
stored record at index is checked, which detects a log that no longer
matches the commitment.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			var record []byte
			if len(args) == 2 {
				if record, err = decodeRecord(args[1]); err != nil {
					return err
				}
			}
			return withSession(cmd, func(_ context.Context, s *session) error {
				proof, err := s.log.Prove(index)
				if err != nil {
					return err
				}
				if record == nil {
					if record, err = s.log.Record(index); err != nil {
						return err
					}
				}
				s.logger.Debugw("verifying", "id", s.id, "index", index, "proof", proof)
				ok, err := s.verify(record, proof)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: %d", ErrNotMember, index)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "record %d verified against %v\n", index, s.tree.Root())
				return nil
			})
		},
	}
}
