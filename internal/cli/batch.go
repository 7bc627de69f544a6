package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/casewiki/casewiki/internal/model"
	"github.com/casewiki/casewiki/internal/pipeline"
	"github.com/casewiki/casewiki/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchRPS     float64
	batchBurst   int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Import multiple notice URLs from a file in parallel",
	Long: `Batch imports many notice URLs concurrently:
- Read URLs from the input file (one per line, # for comments)
- Import in parallel with a configurable worker count
- Pace requests per domain so regulator sites are not hammered
- Write one JSON case file per URL

Example:
  casewiki batch urls.txt
  casewiki batch urls.txt --concurrency 8 --output-dir ./cases
  casewiki batch urls.txt --rate 1 --burst 2`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./casewiki-cases", "output directory for case JSON files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
	batchCmd.Flags().Float64Var(&batchRPS, "rate", 2, "max requests per second per domain")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 4, "per-domain burst size")

	// Inherit fetch flags from import
	batchCmd.Flags().DurationVar(&timeout, "fetch-timeout", 30*time.Second, "timeout for individual fetches")
	batchCmd.Flags().StringVar(&userAgent, "ua", "CaseWiki/0.1 (+https://github.com/casewiki/casewiki)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.RateLimit.RequestsPerSecond = batchRPS
	cfg.RateLimit.BurstSize = batchBurst

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Rate:       %.1f rps, burst %d per domain\n", batchRPS, batchBurst)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n\n", outputDir)

	importer := pipeline.NewImporter(cfg)
	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	processor := worker.NewBatchProcessor(importer, limiter, cfg.Concurrency.Workers)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.URL, result.Err)
			continue
		}

		path := filepath.Join(outputDir, caseFilename(result.URL))
		if err := writeBatchResult(result.Result, path); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.URL, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "OK   %s (%d/7 fields)\n", result.URL, result.Result.Case.FilledFields())
	}

	fmt.Fprintf(os.Stderr, "\nTotal:    %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d imports failed", failureCount, len(results))
	}
	return nil
}

// caseFilename derives a stable, filesystem-safe name from a notice URL
func caseFilename(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	suffix := hex.EncodeToString(hash[:4])

	host := "case"
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = strings.ReplaceAll(parsed.Host, ":", "_")
	}

	return host + "-" + suffix + ".json"
}

func writeBatchResult(result *model.ImportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
