package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local word cache",
	Long: `Inspect or clear the local word cache.

Examples:
  wordbrowse-cli cache info
  wordbrowse-cli cache clear`,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what the cache holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := services.Cache.Info(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "path:    %s\n", services.Cache.Path())
		fmt.Fprintf(out, "words:   %d\n", info.Count)
		if info.UpdatedAt.IsZero() {
			fmt.Fprintln(out, "updated: never")
		} else {
			fmt.Fprintf(out, "updated: %s\n", info.UpdatedAt.Local().Format(time.DateTime))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached words",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.Cache.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
