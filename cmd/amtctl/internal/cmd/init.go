package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/amt"
	"github.com/celestiaorg/amt/storage"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file and an empty tree",
		Long: `Create a configuration file with a fresh tree id in the given directory,
and store an empty tree for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			recordSize, err := cmd.Flags().GetInt("record-size")
			if err != nil {
				return err
			}
			hash, err := cmd.Flags().GetString("hash")
			if err != nil {
				return err
			}

			conf := NewConfig(filepath.Join(dir, ConfigFile))
			conf.RecordSize = recordSize
			conf.Hash = hash
			if err := conf.Validate(); err != nil {
				return err
			}
			store, err := storage.NewFileStore(conf.StatePath())
			if err != nil {
				return err
			}
			if err := conf.Save(); err != nil {
				return err
			}
			ctx := commandContext(cmd)
			if err := store.SaveRecords(ctx, conf.ID(), nil); err != nil {
				return err
			}
			if err := store.SaveState(ctx, conf.ID(), amt.State{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tree %s created in %s\n", conf.TreeID, conf.Path)
			return nil
		},
	}
	cmd.Flags().StringP("dir", "d", ".", "Directory for the configuration file and the tree state")
	cmd.Flags().Int("record-size", amt.DefaultRecordSize, "Size of every record in bytes")
	cmd.Flags().String("hash", "sha256", "Base hash function (sha256 or blake3)")
	return cmd
}
