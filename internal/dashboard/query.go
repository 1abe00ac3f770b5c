// Package dashboard holds the derived views over a fetched lead list: the
// filter/sort projection, the debounced search input and the source analytics.
package dashboard

import (
	"sort"
	"strings"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
)

// SortKey names a sortable lead field. The zero value means "input order".
type SortKey string

const (
	SortNone      SortKey = ""
	SortName      SortKey = "name"
	SortEmail     SortKey = "email"
	SortCreatedAt SortKey = "createdAt"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortName, SortEmail, SortCreatedAt:
		return true
	}
	return false
}

type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// ParseDirection accepts "asc"/"desc" and the long forms. Empty means ascending.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	}
	return "", false
}

// Query is every input of the projection besides the list itself.
type Query struct {
	Search    string
	Source    entity.Source // empty passes everything through
	SortKey   SortKey
	Direction Direction
}

// Project returns the leads matching q in the requested order. The input slice
// and the leads it points to are left untouched, and equal sort keys keep
// their input order.
func Project(leads []*entity.Lead, q Query) []*entity.Lead {
	needle := strings.ToLower(q.Search)
	out := make([]*entity.Lead, 0, len(leads))
	for _, l := range leads {
		if l == nil {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(l.Name), needle) &&
			!strings.Contains(strings.ToLower(l.Email), needle) {
			continue
		}
		if q.Source != "" && l.Source != q.Source {
			continue
		}
		out = append(out, l)
	}

	less := lessFunc(q.SortKey)
	if less == nil {
		return out
	}
	desc := q.Direction == Descending
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(k SortKey) func(a, b *entity.Lead) bool {
	switch k {
	case SortName:
		return func(a, b *entity.Lead) bool { return a.Name < b.Name }
	case SortEmail:
		return func(a, b *entity.Lead) bool { return a.Email < b.Email }
	case SortCreatedAt:
		return func(a, b *entity.Lead) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	return nil
}
