package dashboard

import "github.com/oksasatya/go-lead-crm/internal/domain/entity"

// Summary is the source breakdown shown next to the leads table.
type Summary struct {
	Total    int                   `json:"total"`
	BySource map[entity.Source]int `json:"bySource"`
	// MaxCount is the largest per-source count, never below 1 so it can be
	// used as a bar chart denominator.
	MaxCount int `json:"maxCount"`
}

// Summarize counts leads per source. Unknown sources are counted as Other.
func Summarize(leads []*entity.Lead) Summary {
	s := Summary{BySource: make(map[entity.Source]int, len(entity.Sources()))}
	for _, src := range entity.Sources() {
		s.BySource[src] = 0
	}
	for _, l := range leads {
		if l == nil {
			continue
		}
		src := l.Source
		if !src.Valid() {
			src = entity.SourceOther
		}
		s.BySource[src]++
		s.Total++
	}
	s.MaxCount = 1
	for _, n := range s.BySource {
		if n > s.MaxCount {
			s.MaxCount = n
		}
	}
	return s
}
