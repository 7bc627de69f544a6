package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/casewiki/casewiki/internal/search"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Preprocess a search query and show related keyword suggestions",
	Long: `Search shows what the case index would actually query:
- the normalized query (width folding, lowercasing, noise stripping)
- up to five related keyword suggestions from the synonym table

Example:
  casewiki search "ＡＰＰ隐私！！！"
  casewiki search 超范围收集`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	normalized := search.Preprocess(query)
	if normalized == "" {
		fmt.Fprintln(os.Stderr, "Query is empty after normalization")
		return nil
	}
	fmt.Printf("query: %s\n", normalized)

	suggestions := search.Suggestions(query)
	if len(suggestions) == 0 {
		return nil
	}

	fmt.Println("related:")
	for _, s := range suggestions {
		fmt.Printf("  %s\n", s)
	}
	return nil
}
