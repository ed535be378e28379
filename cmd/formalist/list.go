package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formalist/pkg/loader"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the forms declared in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loader.LoadFS(os.DirFS(dir), nil)
			if err != nil {
				return err
			}
			root.logger.Debug().Str("dir", dir).Int("forms", len(store.List())).Msg("forms loaded")
			for _, id := range store.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, store.Source(id))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory containing form documents")
	return cmd
}
