package model

import "time"

// Config holds the complete corefilter configuration.
type Config struct {
	Filters     FilterConfig      `yaml:"filters" json:"filters"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// FilterConfig controls the filter cascade. The heuristic word lists default
// to the standard ones; overriding them changes which surface forms the
// fixed-phrase and entity-type stages discard.
type FilterConfig struct {
	// Stages is the cascade, in application order, by stage name.
	Stages []string `yaml:"stages" json:"stages"`
	// FixedPhrases are dropped on a case-normalized full-text match.
	FixedPhrases []string `yaml:"fixed_phrases" json:"fixed_phrases"`
	// ExactPhrases are dropped only on an exact-case full-text match.
	ExactPhrases []string `yaml:"exact_phrases" json:"exact_phrases"`
	// ExcludedEntityTags lists head NER tags that disqualify proper-name
	// mentions.
	ExcludedEntityTags []string `yaml:"excluded_entity_tags" json:"excluded_entity_tags"`
}

// CacheConfig controls the parsed-document cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir" json:"dir"` // empty means ~/.corefilter/cache
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Filters: FilterConfig{
			Stages: []string{
				"head-pos",
				"entity-type",
				"fixed-phrase",
				"pleonastic",
				"same-head",
				"embedded-head",
				"apposition",
			},
			FixedPhrases: []string{"mm", "hmm", "ahem", "um"},
			// Exact case so the pronoun "us" is never discarded.
			ExactPhrases:       []string{"US", "U.S."},
			ExcludedEntityTags: []string{"QUANTITY", "CARDINAL", "ORDINAL", "MONEY", "PERCENT"},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
