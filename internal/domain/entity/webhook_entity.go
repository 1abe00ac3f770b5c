package entity

// WebhookStatus reports what happened to the outbound notification of a new lead.
// It is informational only and never changes the outcome of a create.
type WebhookStatus string

const (
	WebhookNotSent WebhookStatus = "Not Sent"
	WebhookSuccess WebhookStatus = "Success"
	WebhookFailed  WebhookStatus = "Failed"
)
