package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lead-crm/internal/dashboard"
	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
	repo "github.com/oksasatya/go-lead-crm/internal/domain/repository"
	"github.com/oksasatya/go-lead-crm/internal/observability/metrics"
	"github.com/oksasatya/go-lead-crm/pkg/helpers"
	"github.com/oksasatya/go-lead-crm/pkg/validation"
)

// EventLeadCreated is the event type published after a lead is stored.
const EventLeadCreated = "lead.created"

// DefaultSideEffectTimeout bounds each cache write, index call and event
// publish made after a lead is stored.
const DefaultSideEffectTimeout = 2 * time.Second

type WebhookNotifier interface {
	Notify(ctx context.Context, lead *entity.Lead) entity.WebhookStatus
}

type LeadCache interface {
	Get(ctx context.Context, id string) (*entity.Lead, error)
	Set(ctx context.Context, lead *entity.Lead) error
}

type LeadIndex interface {
	Index(ctx context.Context, lead *entity.Lead) error
	Search(ctx context.Context, text string, size int) ([]*entity.Lead, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, body any) error
}

// LeadService owns lead creation and reads. Only Repo is required; every
// other collaborator may be nil.
type LeadService struct {
	Repo    repo.LeadRepository
	Webhook WebhookNotifier
	Cache   LeadCache
	Index   LeadIndex
	Events  EventPublisher
	Metrics *metrics.LeadMetrics
	Logger  logrus.FieldLogger

	// SideEffectTimeout overrides DefaultSideEffectTimeout when positive.
	SideEffectTimeout time.Duration
}

func NewLeadService(r repo.LeadRepository, webhook WebhookNotifier, cache LeadCache, index LeadIndex, events EventPublisher, m *metrics.LeadMetrics, logger logrus.FieldLogger) *LeadService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &LeadService{
		Repo:    r,
		Webhook: webhook,
		Cache:   cache,
		Index:   index,
		Events:  events,
		Metrics: m,
		Logger:  logger,
	}
}

// CreateLeadInput is the create payload. Nil optional fields were not sent.
type CreateLeadInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Message *string `json:"message"`
	Source  *string `json:"source"`
}

type CreateLeadResult struct {
	Lead    *entity.Lead
	Webhook entity.WebhookStatus
}

// Validate applies the rules in order and returns the first failure.
func (in CreateLeadInput) Validate() *ValidationError {
	if validation.Var(in.Name, "nonblank") != nil {
		return &ValidationError{Message: MsgNameRequired}
	}
	if validation.Var(in.Email, "required,leademail") != nil {
		return &ValidationError{Message: MsgEmailRequired}
	}
	if in.Source != nil && validation.Var(*in.Source, "leadsource") != nil {
		return &ValidationError{Message: MsgInvalidSource}
	}
	return nil
}

func (in CreateLeadInput) toEntity() *entity.Lead {
	src := entity.DefaultSource
	if in.Source != nil {
		src = entity.Source(*in.Source)
	}
	return &entity.Lead{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Message: in.Message,
		Source:  src,
	}
}

// CreateLead validates and stores a lead, then runs the webhook. Only
// validation and store failures fail the call; the webhook outcome is
// reported in the result.
func (s *LeadService) CreateLead(ctx context.Context, in CreateLeadInput) (*CreateLeadResult, error) {
	if verr := in.Validate(); verr != nil {
		s.Metrics.ObserveRejected(verr.Message)
		return nil, verr
	}

	lead := in.toEntity()
	if err := s.Repo.Create(ctx, lead); err != nil {
		s.Metrics.ObserveStoreError("create")
		helpers.LogError(s.Logger, "create lead failed", err, nil)
		return nil, &StoreError{Op: "create", Err: err}
	}
	s.Metrics.ObserveCreated(string(lead.Source))

	status := s.notify(ctx, lead)
	s.afterCreate(ctx, lead)

	s.Logger.WithFields(logrus.Fields{
		"lead_id": lead.ID,
		"source":  lead.Source,
		"webhook": status,
	}).Info("lead created")
	return &CreateLeadResult{Lead: lead, Webhook: status}, nil
}

func (s *LeadService) notify(ctx context.Context, lead *entity.Lead) (status entity.WebhookStatus) {
	if s.Webhook == nil {
		return entity.WebhookNotSent
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.Logger.WithField("lead_id", lead.ID).WithField("panic", r).Warn("webhook notifier panicked")
			status = entity.WebhookFailed
		}
		s.Metrics.ObserveWebhook(string(status))
		// no call was made for NotSent, so there is no latency to record
		if status != entity.WebhookNotSent {
			s.Metrics.ObserveWebhookLatency(time.Since(start).Seconds())
		}
	}()
	return s.Webhook.Notify(ctx, lead)
}

// afterCreate runs the optional side effects, each bounded by
// SideEffectTimeout. Failures are logged and dropped.
func (s *LeadService) afterCreate(ctx context.Context, lead *entity.Lead) {
	fields := logrus.Fields{"lead_id": lead.ID}
	if s.Cache != nil {
		if err := s.bounded(ctx, func(ctx context.Context) error { return s.Cache.Set(ctx, lead) }); err != nil {
			helpers.LogWarn(s.Logger, "cache lead failed", err, fields)
		}
	}
	if s.Index != nil {
		if err := s.bounded(ctx, func(ctx context.Context) error { return s.Index.Index(ctx, lead) }); err != nil {
			helpers.LogWarn(s.Logger, "index lead failed", err, fields)
		}
	}
	if s.Events != nil {
		if err := s.bounded(ctx, func(ctx context.Context) error {
			return s.Events.PublishEvent(ctx, EventLeadCreated, lead)
		}); err != nil {
			helpers.LogWarn(s.Logger, "publish lead.created failed", err, fields)
		}
	}
}

func (s *LeadService) bounded(ctx context.Context, fn func(context.Context) error) error {
	timeout := s.SideEffectTimeout
	if timeout <= 0 {
		timeout = DefaultSideEffectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

// ListLeads returns every lead, newest first. An empty store yields an empty slice.
func (s *LeadService) ListLeads(ctx context.Context) ([]*entity.Lead, error) {
	leads, err := s.Repo.List(ctx)
	if err != nil {
		s.Metrics.ObserveStoreError("list")
		helpers.LogError(s.Logger, "list leads failed", err, nil)
		return nil, &StoreError{Op: "list", Err: err}
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

// GetLead reads through the cache when one is configured.
func (s *LeadService) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrLeadNotFound
	}
	fields := logrus.Fields{"lead_id": id}

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, id)
		if err != nil {
			helpers.LogWarn(s.Logger, "cache read failed", err, fields)
		} else if cached != nil {
			return cached, nil
		}
	}

	lead, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrLeadNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		s.Metrics.ObserveStoreError("get")
		helpers.LogError(s.Logger, "get lead failed", err, fields)
		return nil, &StoreError{Op: "get", Err: err}
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, lead); err != nil {
			helpers.LogWarn(s.Logger, "cache lead failed", err, fields)
		}
	}
	return lead, nil
}

// QueryLeads is ListLeads followed by the dashboard projection.
func (s *LeadService) QueryLeads(ctx context.Context, q dashboard.Query) ([]*entity.Lead, error) {
	leads, err := s.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.Project(leads, q), nil
}

func (s *LeadService) LeadStats(ctx context.Context) (dashboard.Summary, error) {
	leads, err := s.ListLeads(ctx)
	if err != nil {
		return dashboard.Summary{}, err
	}
	return dashboard.Summarize(leads), nil
}

// SearchLeads asks the search index first and falls back to a substring
// match over the store when the index is missing or failing.
func (s *LeadService) SearchLeads(ctx context.Context, text string, size int) ([]*entity.Lead, error) {
	text = strings.TrimSpace(text)
	if s.Index != nil && text != "" {
		hits, err := s.Index.Search(ctx, text, size)
		if err == nil {
			return hits, nil
		}
		helpers.LogWarn(s.Logger, "search index failed, falling back to store", err, logrus.Fields{"q": text})
	}

	leads, err := s.QueryLeads(ctx, dashboard.Query{Search: text})
	if err != nil {
		return nil, err
	}
	if size > 0 && len(leads) > size {
		leads = leads[:size]
	}
	return leads, nil
}
