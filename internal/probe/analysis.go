package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ErrorSummary holds the diagnostic fields of an error response. Fields that
// were absent, null or empty are left nil.
type ErrorSummary struct {
	Message     json.RawMessage
	Description json.RawMessage
	Errors      json.RawMessage
}

// ParseErrorSummary decodes body and picks out message, description and
// errors. Valid JSON that is not an object yields an empty summary; only a
// decode failure or a null body is an error.
func ParseErrorSummary(body []byte) (ErrorSummary, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ErrorSummary{}, fmt.Errorf("decode error response: %w", err)
	}
	if decoded == nil {
		return ErrorSummary{}, fmt.Errorf("decode error response: body is null")
	}
	if _, ok := decoded.(map[string]any); !ok {
		return ErrorSummary{}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ErrorSummary{}, fmt.Errorf("decode error response: %w", err)
	}

	var s ErrorSummary
	if v := obj["message"]; present(v) {
		s.Message = v
	}
	if v := obj["description"]; present(v) {
		s.Description = v
	}
	if v := obj["errors"]; present(v) {
		s.Errors = v
	}
	return s, nil
}

func writeErrorAnalysis(w io.Writer, body []byte) {
	fmt.Fprintln(w, "=== ERROR ANALYSIS ===")

	s, err := ParseErrorSummary(body)
	if err != nil {
		fmt.Fprintln(w, "Could not parse error response")
		return
	}
	if s.Message != nil {
		fmt.Fprintln(w, "Error Message:", plainValue(s.Message))
	}
	if s.Description != nil {
		fmt.Fprintln(w, "Error Description:", plainValue(s.Description))
	}
	if s.Errors != nil {
		pretty, _ := prettyJSON(s.Errors)
		fmt.Fprintln(w, "Detailed Errors:", pretty)
	}
}

// present reports whether v carries a value worth printing: not missing, null,
// false, zero or an empty string.
func present(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(string(v), 64); err == nil && f == 0 {
		return false
	}
	return true
}

// plainValue prints JSON strings without quotes and anything else as compact JSON.
func plainValue(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return string(v)
	}
	return buf.String()
}
