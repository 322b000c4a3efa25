package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the word list and replace the cache",
	Long: `Download the word list from the configured source, ignoring the cache,
and store it for offline use.

Examples:
  wordbrowse-cli fetch
  WORDBROWSE_SOURCE_URL=http://mirror.local/word.json wordbrowse-cli fetch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := services.Provider.Refresh(cmd.Context(), progressPrinter(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		if err := <-result.CacheWrite; err != nil {
			return fmt.Errorf("downloaded %d words but could not cache them: %w", len(result.Words), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cached %d words in %s\n", len(result.Words), services.Cache.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
