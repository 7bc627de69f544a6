package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/casewiki/casewiki/internal/llm"
	"github.com/casewiki/casewiki/internal/model"
	"github.com/casewiki/casewiki/internal/pipeline"
)

var (
	sourceType string
	outJSON    string
	timeout    time.Duration
	userAgent  string
	maxBytes   int64
	noCache    bool
	noRobots   bool
	llmEnabled bool
	llmModel   string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <url|file|->",
	Short: "Import one regulator notice into a structured case",
	Long: `Import runs smart import on a single source:
- url:   fetch the page, strip markup, extract case fields
- text:  read notice text from a file (or stdin with "-")
- image: record the file URL; fields stay empty until OCR exists
- pdf:   record the file URL; fields stay empty until parsing exists

Every missing field becomes a warning; confidence is the share of the
seven fields that were filled.

Example:
  casewiki import https://www.miit.gov.cn/notice/2024-03.html
  casewiki import --type text notice.txt
  casewiki import --type text - < notice.txt
  casewiki import https://example.com/notice --json case.json --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&sourceType, "type", "url", "source type (url, text, image, pdf)")
	importCmd.Flags().StringVar(&outJSON, "json", "", "write the result JSON to this path (default: stdout)")

	// HTTP flags
	importCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")
	importCmd.Flags().StringVar(&userAgent, "ua", "CaseWiki/0.1 (+https://github.com/casewiki/casewiki)", "HTTP User-Agent")
	importCmd.Flags().Int64Var(&maxBytes, "max-bytes", 5_000_000, "max response bytes to read")
	importCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetch)")
	importCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")

	// LLM flags
	importCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM review summary")
	importCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout+10*time.Second)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	content := args[0]
	typ := model.SourceType(sourceType)
	if typ == model.SourceText {
		text, err := readTextSource(content)
		if err != nil {
			return err
		}
		content = text
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Importing %s source\n", typ)
		fmt.Fprintf(os.Stderr, "Cache: %v, robots: %v\n\n", cfg.Cache.Enabled, cfg.Robots.Enabled)
	}

	importer := pipeline.NewImporter(cfg)
	result, err := importer.Import(ctx, model.ImportRequest{Type: typ, Content: content})
	if err != nil {
		if ie, ok := pipeline.AsImportError(err); ok {
			return fmt.Errorf("import failed (%s): %s", ie.Code, ie.Message)
		}
		return fmt.Errorf("import failed: %w", err)
	}

	if cfg.LLM.Enabled {
		summarizer, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			return err
		}
		summary, err := summarizer.Summarize(ctx, result.Case)
		if err != nil {
			// The case is already extracted; a summary failure is not fatal
			fmt.Fprintf(os.Stderr, "LLM summary failed: %v\n", err)
		} else {
			result.Summary = summary
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Filled %d/7 fields (confidence %.2f) in %dms\n",
			result.Case.FilledFields(), result.Case.Confidence, result.ElapsedMS)
		for _, w := range result.Case.Warnings {
			fmt.Fprintf(os.Stderr, "  ! %s\n", w)
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeResult(result, outJSON)
}

// buildConfig merges the import flags over the defaults
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Robots.Enabled = !noRobots
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Enabled = true
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

// readTextSource loads notice text from a file, or stdin when path is "-"
func readTextSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}

// writeResult renders the result JSON to path, or stdout when path is empty
func writeResult(result *model.ImportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	return nil
}
