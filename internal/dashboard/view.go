package dashboard

import (
	"sync"
	"time"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
)

// View keeps the dashboard state for one session: the fetched list, the
// debounced search text, the source filter and the sort state. OnChange, if
// set, receives the new rows whenever the projection inputs change.
type View struct {
	mu       sync.Mutex
	leads    []*entity.Lead
	search   string // value after debouncing
	source   entity.Source
	sort     SortState
	onChange func([]*entity.Lead)

	debounce *Debouncer[string]
}

func NewView(delay time.Duration, onChange func([]*entity.Lead)) *View {
	v := &View{onChange: onChange}
	v.debounce = NewDebouncer(delay, func(s string) {
		v.update(func() { v.search = s })
	})
	return v
}

// SetLeads replaces the full list, e.g. after the initial fetch.
func (v *View) SetLeads(leads []*entity.Lead) {
	cp := append([]*entity.Lead(nil), leads...)
	v.update(func() { v.leads = cp })
}

// SetSearch records a keystroke. The projection only sees it after the
// debounce delay passes without another keystroke.
func (v *View) SetSearch(text string) {
	v.debounce.Push(text)
}

func (v *View) SetSource(src entity.Source) {
	v.update(func() { v.source = src })
}

func (v *View) ToggleSort(key SortKey) {
	v.update(func() { v.sort = v.sort.Toggle(key) })
}

func (v *View) Sort() SortState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sort
}

func (v *View) Query() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query()
}

// Rows is the current projection.
func (v *View) Rows() []*entity.Lead {
	v.mu.Lock()
	leads, q := v.leads, v.query()
	v.mu.Unlock()
	return Project(leads, q)
}

func (v *View) Summary() Summary {
	v.mu.Lock()
	leads := v.leads
	v.mu.Unlock()
	return Summarize(leads)
}

// Close cancels a pending debounced search.
func (v *View) Close() {
	v.debounce.Stop()
}

func (v *View) query() Query {
	return Query{
		Search:    v.search,
		Source:    v.source,
		SortKey:   v.sort.Key,
		Direction: v.sort.Direction,
	}
}

func (v *View) update(fn func()) {
	v.mu.Lock()
	fn()
	leads, q := v.leads, v.query()
	cb := v.onChange
	v.mu.Unlock()
	if cb != nil {
		cb(Project(leads, q))
	}
}
