package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
	"github.com/oksasatya/go-lead-crm/internal/domain/repository"
)

// LeadRepository keeps leads in process memory. Used for local runs
// (STORE_DRIVER=memory) and tests.
type LeadRepository struct {
	mu    sync.RWMutex
	leads map[string]*entity.Lead
	order []string // insertion order
	now   func() time.Time
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{
		leads: make(map[string]*entity.Lead),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *LeadRepository) Create(_ context.Context, l *entity.Lead) error {
	stored := *l
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now()

	r.mu.Lock()
	r.leads[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	r.mu.Unlock()

	l.ID = stored.ID
	l.CreatedAt = stored.CreatedAt
	return nil
}

func (r *LeadRepository) List(_ context.Context) ([]*entity.Lead, error) {
	r.mu.RLock()
	out := make([]*entity.Lead, 0, len(r.order))
	// newest inserted first so equal timestamps still come back newest first
	for i := len(r.order) - 1; i >= 0; i-- {
		l := *r.leads[r.order[i]]
		out = append(out, &l)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *LeadRepository) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, repository.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

var _ repository.LeadRepository = (*LeadRepository)(nil)
