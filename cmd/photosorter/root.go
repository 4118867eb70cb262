package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags sortFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "photosorter --source <dir> --target <dir>",
		Short: "Sort photos and videos into a date-structured library",
		Long: "photosorter copies every recognized photo and video under the source directory\n" +
			"into <target>/<year>/<month>/<day>/, using each file's modification time.\n" +
			"Files already present with the same size and time are skipped; conflicting\n" +
			"names get a numeric suffix. Source files are never modified.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, ctx, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.register(rootCmd)

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newExtensionsCommand())

	return rootCmd
}
