package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"photosorter/internal/media"
)

func newExtensionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "extensions",
		Short:       "List the file extensions treated as media",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exts := media.Extensions()
			slices.Sort(exts)
			out := cmd.OutOrStdout()
			for _, ext := range exts {
				fmt.Fprintln(out, ext)
			}
			return nil
		},
	}
}
