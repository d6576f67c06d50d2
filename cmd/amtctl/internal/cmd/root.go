// Package cmd implements the commands of amtctl.
package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the "amtctl" command with all of its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "amtctl",
		Short: "Append-only Merkle tree with proof checked updates",
		Long: `amtctl keeps a log of fixed size records and the commitment of an
append-only Merkle tree over them. Every append and update is proven
against the stored commitment before anything is written back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", ConfigFile, "Path to the configuration file")
	root.PersistentFlags().Bool("debug", false, "Log at debug level")

	root.AddCommand(
		newInitCmd(),
		newAppendCmd(),
		newUpdateCmd(),
		newVerifyCmd(),
		newShowCmd(),
	)
	return root
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withSession opens the session named by the command's flags, runs fn and
// closes the session.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	confPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	s, err := openSession(ctx, confPath, debug)
	if err != nil {
		return err
	}
	defer s.close()
	if err := fn(ctx, s); err != nil {
		s.logger.Errorw(cmd.Name()+" failed", "id", s.id, "err", err)
		return err
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func decodeRecord(arg string) ([]byte, error) {
	record, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("record must be hex encoded: %w", err)
	}
	return record, nil
}
