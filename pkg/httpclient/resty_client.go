package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultChunkSize bounds a single read from the response stream.
const DefaultChunkSize = 32 * 1024

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client    *resty.Client
	chunkSize int
	log       Logger
}

// NewRestyClient creates a new RestyClient with the specified timeout. A zero
// timeout waits indefinitely.
func NewRestyClient(timeout time.Duration, log Logger) *RestyClient {
	return &RestyClient{
		client:    newRestyBaseClient(timeout),
		chunkSize: DefaultChunkSize,
		log:       ensureLogger(log),
	}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
// Redirects are not followed: a 3xx is handed back as the response.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetRetryCount(0)
	c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	return c
}

// Post sends body to url and reads the whole response stream before returning.
func (r *RestyClient) Post(ctx context.Context, url string, headers map[string]string, body []byte) (Response, error) {
	req := r.client.R().
		SetContext(ctx).
		SetBody(body).
		SetDoNotParseResponse(true)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	r.log.DebugObj("http request", "request", map[string]any{
		"method":     http.MethodPost,
		"url":        url,
		"body_bytes": len(body),
	})

	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}

	raw := resp.RawBody()
	if raw == nil {
		return &restyResponseAdapter{resp: resp}, nil
	}
	defer raw.Close()

	chunks := 0
	data, err := ReadChunks(raw, r.chunkSize, func(n int) {
		chunks++
		r.log.DebugObj("response chunk received", "chunk", map[string]any{
			"index": chunks,
			"bytes": n,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	r.log.DebugObj("http response complete", "response", map[string]any{
		"status":     resp.StatusCode(),
		"chunks":     chunks,
		"body_bytes": len(data),
	})

	return &restyResponseAdapter{resp: resp, body: data}, nil
}

// ReadChunks drains r in reads of at most size bytes and concatenates them in
// arrival order. onChunk, if set, observes the length of every non-empty read.
func ReadChunks(r io.Reader, size int, onChunk func(n int)) ([]byte, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var buf bytes.Buffer
	chunk := make([]byte, size)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if onChunk != nil {
				onChunk(n)
			}
		}
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return buf.Bytes(), err
		}
	}
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
	body []byte
}

func (r *restyResponseAdapter) Body() []byte        { return r.body }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Status() string      { return r.resp.Status() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
