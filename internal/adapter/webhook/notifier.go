// Package webhook posts short notifications to an ntfy topic or a Gotify server.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

const (
	DefaultTimeout = 10 * time.Second

	gotifyPriority = 5
)

// Style selects the payload format.
type Style string

const (
	StyleNtfy   Style = "ntfy"
	StyleGotify Style = "gotify"
)

// DetectStyle picks ntfy for ntfy.sh URLs and Gotify for everything else.
func DetectStyle(url string) Style {
	if strings.Contains(url, "ntfy.sh") {
		return StyleNtfy
	}
	return StyleGotify
}

// Notifier sends notifications to a single webhook URL.
type Notifier struct {
	url     string
	style   Style
	timeout time.Duration
	doer    provider.HTTPDoer
	log     *slog.Logger
}

// NewNotifier creates a Notifier. An empty style is detected from the URL;
// a nil doer means http.DefaultClient.
func NewNotifier(url string, style Style, doer provider.HTTPDoer, logger *slog.Logger) *Notifier {
	if style == "" {
		style = DetectStyle(url)
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Notifier{
		url:     url,
		style:   style,
		timeout: DefaultTimeout,
		doer:    doer,
		log:     logger.With("adapter", "webhook"),
	}
}

type gotifyMessage struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// Send posts one notification. Any non-2xx response is an error.
func (n *Notifier) Send(ctx context.Context, title, message string) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := n.newRequest(ctx, title, message)
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}

	resp, err := n.doer.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}

	n.log.DebugContext(ctx, "notification sent", slog.String("style", string(n.style)))
	return nil
}

func (n *Notifier) newRequest(ctx context.Context, title, message string) (*http.Request, error) {
	if n.style == StyleNtfy {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, strings.NewReader(message))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Title", title)
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
		return req, nil
	}

	body, err := json.Marshal(gotifyMessage{Title: title, Message: message, Priority: gotifyPriority})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(n.url, "/")+"/message", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
