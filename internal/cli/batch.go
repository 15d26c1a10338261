package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ppiankov/corefilter/internal/pipeline"
	"github.com/ppiankov/corefilter/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache and stages are defined in extract.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list>",
	Short: "Filter mentions from many corpus files in parallel",
	Long: `Batch processes a corpus concurrently:
- Walk a directory for .conll files, or read a list file of paths
- Process files in parallel with configurable worker count
- Each file runs the full extract-and-filter pipeline
- Write one JSON report per corpus file

Example:
  corefilter batch ./corpus
  corefilter batch ./corpus --concurrency 8 --output-dir ./reports
  corefilter batch files.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./corefilter-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&stages, "stages", "", "comma-separated cascade stages (default: full cascade)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-document cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Concurrency.Workers = concurrency
	if stages != "" {
		cfg.Filters.Stages = splitStages(stages)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Corefilter Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Corpus:       %s\n", target)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline and batch processor
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Processing corpus files...\n")
	fmt.Fprintf(os.Stderr, "\n")

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat corpus argument: %w", err)
	}
	var results []*worker.FileResult
	if info.IsDir() {
		results, err = processor.ProcessDir(ctx, target)
		if err != nil {
			return fmt.Errorf("process dir: %w", err)
		}
	} else {
		paths, err := worker.ReadPathList(target)
		if err != nil {
			return fmt.Errorf("read path list: %w", err)
		}
		results = processor.ProcessPaths(ctx, paths)
	}

	renderer := pipeline.NewRenderer(false)
	successCount := 0
	failureCount := 0
	mentionCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		name := strings.TrimSuffix(filepath.Base(result.Path), ".conll")
		jsonPath := filepath.Join(outputDir, name+".json")
		if err := renderer.RenderJSON(result.Results, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		retained := 0
		for _, res := range result.Results {
			retained += res.Report.Retained
		}
		mentionCount += retained
		fmt.Fprintf(os.Stderr, "✓ %s (%d documents, %d mentions)\n", result.Path, len(result.Results), retained)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Mentions:  %d\n", mentionCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
