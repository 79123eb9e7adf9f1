package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/xraph/rotawatch/signature"
)

const maxResponseBody = 1024 // 1KB cap on response body storage

// Sender performs a single multipart webhook upload.
type Sender struct {
	client *http.Client
	now    func() time.Time
}

// NewSender creates a sender with the given HTTP timeout.
func NewSender(timeout time.Duration) *Sender {
	return &Sender{
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

// Send uploads msg to target and returns the result. Outcome and DeliveryID
// are left for the caller to fill.
func (s *Sender) Send(ctx context.Context, target Target, msg Message) Result {
	res := Result{Target: target.Label()}

	params := &discordgo.WebhookParams{
		Content:  msg.Content,
		Username: msg.Username,
	}
	files := []*discordgo.File{{
		Name:        msg.File.Name,
		ContentType: msg.File.ContentType,
		Reader:      bytes.NewReader(msg.File.Data),
	}}

	contentType, body, err := discordgo.MultipartBodyWithJSON(params, files)
	if err != nil {
		res.Error = fmt.Sprintf("build multipart body: %v", err)
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(body))
	if err != nil {
		res.Error = fmt.Sprintf("create request: %v", err)
		return res
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "rotawatch/1.0")
	signature.Apply(req.Header, body, target.Secret, s.now())

	start := time.Now()
	resp, err := s.client.Do(req) //nolint:gosec // G704: URL is an operator-configured webhook destination.
	res.LatencyMs = int(time.Since(start).Milliseconds())

	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if readErr != nil {
		res.Error = fmt.Sprintf("read response: %v", readErr)
		return res
	}
	res.Response = string(respBody)

	return res
}
