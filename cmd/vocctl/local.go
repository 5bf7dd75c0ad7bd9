package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voiceofchrist/churchsite/internal/localstore"
)

func newLocalCmd(state *cliState) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "local",
		Short: "Inspect or reset the file-backed local store",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "local store directory (defaults to storage.local_dir)")

	open := func() (*localstore.Store, error) {
		if dir == "" {
			if err := state.load(); err != nil {
				return nil, err
			}
			dir = state.cfg.Storage.LocalDir
		}
		if dir == "" {
			return nil, errors.New("no local store directory: set --dir or storage.local_dir")
		}
		kv, err := localstore.NewFileKV(dir)
		if err != nil {
			return nil, err
		}
		return localstore.New(kv, localstore.Options{}), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dump",
			Short: "Print every collection as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := open()
				if err != nil {
					return err
				}
				collections, err := store.Dump()
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(collections)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Drop every collection and write the default dataset",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := open()
				if err != nil {
					return err
				}
				if err := store.Reset(); err != nil {
					return err
				}
				if err := store.Initialize(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "local store at %s reset to defaults\n", dir)
				return nil
			},
		},
	)
	return cmd
}
