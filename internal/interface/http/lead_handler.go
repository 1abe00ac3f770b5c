package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lead-crm/internal/application"
	"github.com/oksasatya/go-lead-crm/internal/dashboard"
	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
	"github.com/oksasatya/go-lead-crm/pkg/response"
	"github.com/oksasatya/go-lead-crm/pkg/validation"
)

const (
	msgLeadNotFound   = "Lead not found"
	msgServerError    = "Server Error"
	msgInvalidPayload = "invalid payload"
	msgInvalidQuery   = "invalid query"
)

type LeadHandler struct {
	Svc    *application.LeadService
	Logger logrus.FieldLogger
}

func NewLeadHandler(svc *application.LeadService, logger logrus.FieldLogger) *LeadHandler {
	return &LeadHandler{Svc: svc, Logger: logger}
}

type listLeadsQuery struct {
	Search string `form:"search"`
	Source string `form:"source" binding:"omitempty,leadsource"`
	Sort   string `form:"sort" binding:"omitempty,oneof=name email createdAt"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc ascending descending"`
}

func (q listLeadsQuery) empty() bool {
	return q.Search == "" && q.Source == "" && q.Sort == "" && q.Order == ""
}

func (q listLeadsQuery) toQuery() dashboard.Query {
	dir, _ := dashboard.ParseDirection(q.Order)
	return dashboard.Query{
		Search:    q.Search,
		Source:    entity.Source(q.Source),
		SortKey:   dashboard.SortKey(q.Sort),
		Direction: dir,
	}
}

type searchLeadsQuery struct {
	Q    string `form:"q"`
	Size int    `form:"size" binding:"omitempty,min=1,max=100"`
}

// List handles GET /leads. Without query params it returns every lead newest
// first; search, source, sort and order narrow and reorder the list.
func (h *LeadHandler) List(c *gin.Context) {
	var q listLeadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidQuery, validation.ToDetails(err))
		return
	}

	var (
		leads []*entity.Lead
		err   error
	)
	if q.empty() {
		leads, err = h.Svc.ListLeads(c.Request.Context())
	} else {
		leads, err = h.Svc.QueryLeads(c.Request.Context(), q.toQuery())
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.List(c, leads)
}

func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.Svc.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, lead)
}

// Create handles POST /leads. An empty body is treated as an empty object so
// the client sees the first failing field rule.
func (h *LeadHandler) Create(c *gin.Context) {
	var in application.CreateLeadInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, msgInvalidPayload, validation.ToDetails(err))
		return
	}

	res, err := h.Svc.CreateLead(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res.Lead, response.WithWebhook(string(res.Webhook)))
}

func (h *LeadHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.LeadStats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *LeadHandler) Search(c *gin.Context) {
	var q searchLeadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidQuery, validation.ToDetails(err))
		return
	}
	leads, err := h.Svc.SearchLeads(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.List(c, leads)
}

func (h *LeadHandler) writeError(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, application.ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("lead request failed")
		}
		response.Error(c, http.StatusInternalServerError, msgServerError, nil)
	}
}
