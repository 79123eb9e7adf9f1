// Package delivery uploads the rendered summary to webhook targets.
//
// Each target receives a Discord-style multipart request: a payload_json
// part with the message and a files[0] part with the image. Targets are
// attempted once each, in order. Failures are reported in the results and
// never abort the run that produced the image.
package delivery

import (
	"net/url"

	"github.com/xraph/rotawatch/id"
)

// Target is a webhook the summary is uploaded to.
type Target struct {
	// Name labels the target in logs and results. Defaults to the URL host.
	Name string `json:"name,omitempty" yaml:"name"`

	// URL is the webhook address.
	URL string `json:"url" yaml:"url"`

	// Secret, when set, signs each upload with HMAC-SHA256.
	Secret string `json:"-" yaml:"secret"`
}

// Label returns a log-safe name for the target. Webhook URLs often embed a
// token, so only the host is used when no name is configured.
func (t Target) Label() string {
	if t.Name != "" {
		return t.Name
	}
	u, err := url.Parse(t.URL)
	if err != nil || u.Host == "" {
		return "webhook"
	}
	return u.Host
}

// Attachment is a file uploaded with a message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is what a target receives.
type Message struct {
	Content  string
	Username string
	File     Attachment
}

// Outcome is the classified result of an upload.
type Outcome string

const (
	// OutcomeDelivered means the target answered 2xx.
	OutcomeDelivered Outcome = "delivered"

	// OutcomeGone means the target answered 404 or 410; the webhook was
	// most likely deleted.
	OutcomeGone Outcome = "gone"

	// OutcomeFailed covers every other status and network errors.
	OutcomeFailed Outcome = "failed"
)

// Result holds the outcome of a single upload.
type Result struct {
	DeliveryID id.ID   `json:"delivery_id"`
	Target     string  `json:"target"`
	StatusCode int     `json:"status_code,omitempty"`
	Error      string  `json:"error,omitempty"`
	Response   string  `json:"response,omitempty"`
	LatencyMs  int     `json:"latency_ms"`
	Outcome    Outcome `json:"outcome"`
}
