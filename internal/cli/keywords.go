package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/casewiki/casewiki/internal/keyword"
)

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords [text]",
	Short: "Extract normalized violation keywords from notice text",
	Long: `Keywords extracts the violation keywords used for case tagging.

Text is split into segments; each segment is matched against the known
violation patterns in order and completed to its canonical form. Segments
that look like violations but match no pattern are kept verbatim so new
violation types are not silently dropped.

Reads stdin when no argument is given.

Example:
  casewiki keywords "该App存在超范围收集、强制授权等问题"
  casewiki keywords < notice.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	keywords := keyword.Extract(text)
	if len(keywords) == 0 {
		fmt.Fprintln(os.Stderr, "No violation keywords found")
		return nil
	}

	for _, kw := range keywords {
		fmt.Println(kw)
	}
	return nil
}
