package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/corefilter/internal/model"
	"github.com/ppiankov/corefilter/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON        string
	stages         string
	noCache        bool
	extractTimeout time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract and filter mentions from a corpus file",
	Long: `Extract reads an annotated corpus file, builds the candidate mention
list for every document in it, and runs the filter cascade:
- Drop adjectival heads and numeric named entities
- Drop filler phrases and pleonastic pronouns
- Resolve same-head and embedded-head redundancy
- Resolve apposition embedding

Example:
  corefilter extract corpus/wsj_0001.conll
  corefilter extract corpus/wsj_0001.conll --json mentions.json
  corefilter extract corpus/wsj_0001.conll --stages head-pos,fixed-phrase`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	extractCmd.Flags().StringVar(&stages, "stages", "", "comma-separated cascade stages (default: full cascade)")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-document cache")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", time.Minute, "overall processing timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	if stages != "" {
		cfg.Filters.Stages = splitStages(stages)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cascade: %s\n", strings.Join(cfg.Filters.Stages, " -> "))
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	results, err := p.ProcessFile(ctx, path)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	renderer := pipeline.NewRenderer(verbose)
	for _, result := range results {
		renderer.RenderSummary(result)
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(results, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	return nil
}

// buildConfig assembles the effective configuration: defaults, then config
// file and environment overrides via viper.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("filters.stages") {
		cfg.Filters.Stages = viper.GetStringSlice("filters.stages")
	}
	if viper.IsSet("filters.fixed_phrases") {
		cfg.Filters.FixedPhrases = viper.GetStringSlice("filters.fixed_phrases")
	}
	if viper.IsSet("filters.exact_phrases") {
		cfg.Filters.ExactPhrases = viper.GetStringSlice("filters.exact_phrases")
	}
	if viper.IsSet("filters.excluded_entity_tags") {
		cfg.Filters.ExcludedEntityTags = viper.GetStringSlice("filters.excluded_entity_tags")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	}
	cfg.Output.Verbose = verbose

	return cfg
}

func splitStages(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
