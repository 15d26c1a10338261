package filter

import (
	"fmt"
	"strings"

	"github.com/ppiankov/corefilter/internal/model"
)

// Stage names accepted by cascade configuration, in the standard order.
const (
	StageHeadPOS      = "head-pos"
	StageEntityType   = "entity-type"
	StageFixedPhrase  = "fixed-phrase"
	StagePleonastic   = "pleonastic"
	StageSameHead     = "same-head"
	StageEmbeddedHead = "embedded-head"
	StageApposition   = "apposition"
)

// stageBuilders maps stage names to constructors. Stages with tunable word
// lists are built from the filter configuration; the rest ignore it.
var stageBuilders = map[string]func(model.FilterConfig) Stage{
	StageHeadPOS: func(model.FilterConfig) Stage { return ByHeadPOS },
	StageEntityType: func(cfg model.FilterConfig) Stage {
		return NewEntityTypeStage(cfg.ExcludedEntityTags)
	},
	StageFixedPhrase: func(cfg model.FilterConfig) Stage {
		return NewFixedPhraseStage(cfg.FixedPhrases, cfg.ExactPhrases)
	},
	StagePleonastic:   func(model.FilterConfig) Stage { return ByPleonasticPronoun },
	StageSameHead:     func(model.FilterConfig) Stage { return BySameHeadLargestSpan },
	StageEmbeddedHead: func(model.FilterConfig) Stage { return ByEmbeddedHead },
	StageApposition:   func(model.FilterConfig) Stage { return ByApposition },
}

// StageNames returns the names of all registered stages in standard order.
func StageNames() []string {
	return []string{
		StageHeadPOS,
		StageEntityType,
		StageFixedPhrase,
		StagePleonastic,
		StageSameHead,
		StageEmbeddedHead,
		StageApposition,
	}
}

type namedStage struct {
	name string
	run  Stage
}

// Cascade is an ordered sequence of filter stages. The order is fixed at
// construction; stages themselves carry no cross-stage state.
type Cascade struct {
	stages []namedStage
}

// FromConfig builds a cascade from the configured stage order and word
// lists. An unknown stage name is a configuration error.
func FromConfig(cfg model.FilterConfig) (*Cascade, error) {
	if len(cfg.Stages) == 0 {
		cfg.Stages = StageNames()
	}
	stages := make([]namedStage, 0, len(cfg.Stages))
	for _, name := range cfg.Stages {
		build, ok := stageBuilders[name]
		if !ok {
			return nil, fmt.Errorf("unknown filter stage %q (known: %s)", name, strings.Join(StageNames(), ", "))
		}
		stages = append(stages, namedStage{name: name, run: build(cfg)})
	}
	return &Cascade{stages: stages}, nil
}

// DefaultCascade returns the standard seven-stage cascade.
func DefaultCascade() *Cascade {
	c, err := FromConfig(model.DefaultConfig().Filters)
	if err != nil {
		// The default configuration only names registered stages.
		panic(err)
	}
	return c
}

// Apply threads the mention list through the stages in order and records
// per-stage input/output counts.
func (c *Cascade) Apply(mentions []*model.Mention) ([]*model.Mention, []model.StageStat) {
	stats := make([]model.StageStat, 0, len(c.stages))
	current := mentions
	for _, stage := range c.stages {
		in := len(current)
		current = stage.run(current)
		stats = append(stats, model.StageStat{
			Name:    stage.name,
			In:      in,
			Out:     len(current),
			Removed: in - len(current),
		})
	}
	return current, stats
}

// Len returns the number of stages in the cascade.
func (c *Cascade) Len() int {
	return len(c.stages)
}
