package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/casewiki/casewiki/internal/model"
)

// CaseImporter imports one notice source into a parsed case
type CaseImporter interface {
	Import(ctx context.Context, req model.ImportRequest) (*model.ImportResult, error)
}

// ImportJob imports a single notice URL
type ImportJob struct {
	Index    int // position in the input list
	URL      string
	Importer CaseImporter
	Limiter  *Limiter // nil disables pacing
}

// Execute runs the import, waiting for the domain limiter first
func (j *ImportJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &BatchResult{Index: j.Index, URL: j.URL, Err: err}
		}
	}

	result, err := j.Importer.Import(ctx, model.ImportRequest{
		Type:    model.SourceURL,
		Content: j.URL,
	})
	return &BatchResult{Index: j.Index, URL: j.URL, Result: result, Err: err}
}

// BatchResult is the outcome of importing one URL from a batch
type BatchResult struct {
	Index  int
	URL    string
	Result *model.ImportResult
	Err    error
}

// GetError returns the import error, if any
func (r *BatchResult) GetError() error {
	return r.Err
}

// BatchProcessor imports many notice URLs concurrently
type BatchProcessor struct {
	importer    CaseImporter
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a batch processor. A nil limiter disables
// per-domain pacing.
func NewBatchProcessor(importer CaseImporter, limiter *Limiter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		importer:    importer,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// ProcessURLs imports urls concurrently. Results come back in input order;
// a failed URL occupies its slot with Err set.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*BatchResult {
	if len(urls) == 0 {
		return []*BatchResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, url := range urls {
		pool.Submit(&ImportJob{
			Index:    i,
			URL:      url,
			Importer: b.importer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	ordered := make([]*BatchResult, len(urls))
	for _, result := range results {
		br := result.(*BatchResult)
		ordered[br.Index] = br
	}

	return ordered
}

// ProcessFile reads URLs from a file and imports them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*BatchResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks, # comments, and
// duplicates
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
