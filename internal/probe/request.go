package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sjalq/bitly-maker/internal/domain"
)

const keyPreviewLen = 8

// BuildRequestBody serializes the shorten payload for longURL. HTML characters
// are left unescaped so the body matches what a plain JSON stringifier sends.
func BuildRequestBody(longURL string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(domain.ShortenRequest{LongURL: longURL}); err != nil {
		return nil, fmt.Errorf("encode shorten request: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// RequestHeaders returns the headers sent with a shorten call.
func RequestHeaders(apiKey string, body []byte) map[string]string {
	return map[string]string{
		"Authorization":  "Bearer " + apiKey,
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
}

// KeyPreview shows at most the first eight characters of apiKey followed by an ellipsis.
func KeyPreview(apiKey string) string {
	r := []rune(apiKey)
	if len(r) > keyPreviewLen {
		r = r[:keyPreviewLen]
	}
	return string(r) + "..."
}
