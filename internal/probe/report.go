package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sjalq/bitly-maker/internal/domain"
	"github.com/sjalq/bitly-maker/pkg/httpclient"
)

func writePreflight(w io.Writer, inv domain.Invocation, body []byte) {
	fmt.Fprintln(w, "=== Bitly API Test ===")
	fmt.Fprintln(w, "URL to shorten:", inv.LongURL)
	fmt.Fprintln(w, "API Key (first 8 chars):", KeyPreview(inv.APIKey))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Request body:", string(body))
	fmt.Fprintln(w)
}

func writeResponse(w io.Writer, resp httpclient.Response) {
	body := resp.Body()

	fmt.Fprintln(w, "=== Response ===")
	fmt.Fprintln(w, "Status Code:", resp.StatusCode())
	fmt.Fprintln(w, "Status Message:", statusMessage(resp))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Headers:", formatHeaders(resp.Header()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Body (raw):", string(body))
	fmt.Fprintln(w)

	if pretty, ok := prettyJSON(body); ok {
		fmt.Fprintln(w, "Body (parsed):", pretty)
		if link := shortLink(resp.StatusCode(), body); link != "" {
			fmt.Fprintln(w, "Short link:", link)
		}
	} else {
		fmt.Fprintln(w, "Body is not valid JSON")
		if title, ok := htmlTitle(resp.Header(), body); ok {
			fmt.Fprintln(w, "HTML page title:", title)
		}
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		fmt.Fprintln(w)
		writeErrorAnalysis(w, body)
	}
}

// statusMessage strips the numeric code from the status line.
func statusMessage(resp httpclient.Response) string {
	code := strconv.Itoa(resp.StatusCode())
	if status := strings.TrimSpace(resp.Status()); status != "" {
		return strings.TrimSpace(strings.TrimPrefix(status, code))
	}
	return http.StatusText(resp.StatusCode())
}

// formatHeaders renders headers with lower-cased names. Single values are
// plain strings and repeated headers are lists; set-cookie is always a list.
func formatHeaders(h http.Header) string {
	out := make(map[string]any, len(h))
	for name, values := range h {
		key := strings.ToLower(name)
		if len(values) == 1 && key != "set-cookie" {
			out[key] = values[0]
			continue
		}
		out[key] = values
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Sprintf("%v", h)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// prettyJSON indents body with two spaces, keeping key order. ok is false when
// body is not valid JSON.
func prettyJSON(body []byte) (string, bool) {
	if !json.Valid(body) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}

func shortLink(status int, body []byte) string {
	if status < 200 || status >= 300 {
		return ""
	}
	var resp domain.ShortenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Link
}

// htmlTitle extracts the <title> of an HTML error page, as served by proxies
// and load balancers in front of the API.
func htmlTitle(h http.Header, body []byte) (string, bool) {
	isHTML := strings.Contains(strings.ToLower(h.Get("Content-Type")), "text/html") ||
		bytes.Contains(bytes.ToLower(body), []byte("<html"))
	if !isHTML {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return title, title != ""
}
