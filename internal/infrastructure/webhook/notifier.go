// Package webhook posts a notification to an external URL when a lead is created.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
	"github.com/oksasatya/go-lead-crm/pkg/helpers"
)

// Payload is the body sent to the webhook target.
type Payload struct {
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Source    entity.Source `json:"source"`
	CreatedAt time.Time     `json:"created_at"`
}

// Notifier makes a single POST per lead. It never retries and never returns
// an error; the outcome is reported as a status.
type Notifier struct {
	URL    string
	Client *http.Client
	Logger logrus.FieldLogger
}

// NewNotifier returns a notifier for url. An empty url makes every Notify a no-op.
func NewNotifier(url string, timeout time.Duration, logger logrus.FieldLogger) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Notifier{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

func (n *Notifier) Configured() bool {
	return n != nil && n.URL != ""
}

// Notify delivers the lead and reports NotSent, Success or Failed.
func (n *Notifier) Notify(ctx context.Context, lead *entity.Lead) (status entity.WebhookStatus) {
	if !n.Configured() || lead == nil {
		return entity.WebhookNotSent
	}
	defer func() {
		if r := recover(); r != nil {
			helpers.LogWarn(n.Logger, "webhook panicked", fmt.Errorf("%v", r), logrus.Fields{"lead_id": lead.ID})
			status = entity.WebhookFailed
		}
	}()

	if err := n.post(ctx, lead); err != nil {
		helpers.LogWarn(n.Logger, "webhook delivery failed", err, logrus.Fields{"lead_id": lead.ID, "url": n.URL})
		return entity.WebhookFailed
	}
	return entity.WebhookSuccess
}

func (n *Notifier) post(ctx context.Context, lead *entity.Lead) error {
	body, err := json.Marshal(Payload{
		Name:      lead.Name,
		Email:     lead.Email,
		Source:    lead.Source,
		CreatedAt: lead.CreatedAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}
	return nil
}
