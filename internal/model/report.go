package model

// Report is the outcome of running the filter cascade over one document.
// Per-stage counts are recorded so every removal is accountable to a named
// heuristic.
type Report struct {
	Document  string        `json:"document"`
	Extracted int           `json:"extracted"` // candidates produced by extraction, dummy included
	Retained  int           `json:"retained"`  // survivors after the full cascade
	Stages    []StageStat   `json:"stages"`
	Mentions  []MentionInfo `json:"mentions"`
}

// StageStat records the effect of one cascade stage.
type StageStat struct {
	Name    string `json:"name"`
	In      int    `json:"in"`
	Out     int    `json:"out"`
	Removed int    `json:"removed"`
}

// MentionInfo is the serializable view of a retained mention.
type MentionInfo struct {
	Span  Span        `json:"span"`
	Text  string      `json:"text"`
	Type  MentionType `json:"type,omitempty"`
	Dummy bool        `json:"dummy,omitempty"`
}

// NewReport assembles a report from the extracted and retained mention lists
// plus the per-stage statistics collected by the cascade.
func NewReport(docName string, extracted, retained []*Mention, stages []StageStat) *Report {
	infos := make([]MentionInfo, 0, len(retained))
	for _, m := range retained {
		infos = append(infos, MentionInfo{
			Span:  m.Span,
			Text:  m.Text(),
			Type:  m.Type,
			Dummy: m.IsDummy,
		})
	}
	return &Report{
		Document:  docName,
		Extracted: len(extracted),
		Retained:  len(retained),
		Stages:    stages,
		Mentions:  infos,
	}
}
