package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wordbrowse/internal/domain"
)

var randomCount int

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print random words",
	Long: `Print random words with their pinyin and explanation.

The word list is read from the local cache, or downloaded when the cache is
empty.

Examples:
  wordbrowse-cli random
  wordbrowse-cli random --count 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if randomCount < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", randomCount)
		}

		result, err := services.Provider.Load(cmd.Context(), progressPrinter(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		defer awaitCacheWrite(cmd.ErrOrStderr(), result.CacheWrite)

		out := cmd.OutOrStdout()
		for i := range randomCount {
			w, ok := domain.RandomWord(result.Words)
			if !ok {
				fmt.Fprintln(out, "The word list is empty")
				return nil
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s  %s\n", w.Word, w.Pinyin)
			if explanation := strings.TrimSpace(w.Explanation); explanation != "" {
				fmt.Fprintln(out, explanation)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(randomCmd)
	randomCmd.Flags().IntVarP(&randomCount, "count", "n", 1, "number of words to print")
}
