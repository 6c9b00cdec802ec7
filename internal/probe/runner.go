package probe

import (
	"context"
	"fmt"
	"io"

	"github.com/sjalq/bitly-maker/internal/domain"
	"github.com/sjalq/bitly-maker/internal/logger"
	"github.com/sjalq/bitly-maker/pkg/httpclient"
)

// Runner sends one shorten request and reports on the outcome.
type Runner struct {
	client   httpclient.Client
	endpoint Endpoint
	out      io.Writer
	errOut   io.Writer
	log      logger.Logger
}

// NewRunner builds a Runner. The report goes to out and transport failures to errOut.
func NewRunner(client httpclient.Client, endpoint Endpoint, out, errOut io.Writer, log logger.Logger) *Runner {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Runner{
		client:   client,
		endpoint: endpoint,
		out:      out,
		errOut:   errOut,
		log:      log,
	}
}

// Run sends exactly one request for inv. Non-2xx statuses and malformed bodies
// are reported, not returned. A transport failure is printed to the error
// stream and only surfaces as an error when ctx was cancelled.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("runner is not initialized")
	}

	body, err := BuildRequestBody(inv.LongURL)
	if err != nil {
		return fmt.Errorf("build request body: %w", err)
	}

	writePreflight(r.out, inv, body)

	url := r.endpoint.URL()
	r.log.DebugObj("sending shorten request", "request", map[string]any{
		"url":      url,
		"long_url": inv.LongURL,
	})

	resp, err := r.client.Post(ctx, url, RequestHeaders(inv.APIKey, body), body)
	if err != nil {
		r.log.DebugObj("shorten request failed", "error", err.Error())
		fmt.Fprintln(r.errOut, "Request error:", err.Error())
		return ctx.Err()
	}

	r.log.DebugObj("shorten response received", "response", map[string]any{
		"status":     resp.StatusCode(),
		"body_bytes": len(resp.Body()),
	})

	writeResponse(r.out, resp)
	return nil
}
