package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// envelope is the generation service reply. Think carries the model's
// reasoning when the service split it out; Data is either the decoded
// resume object or, from some deployments, the raw model output as a string.
type envelope struct {
	Think *string         `json:"think"`
	Data  json.RawMessage `json:"data"`
}

// decodeData turns the envelope data into a generic map. The second return
// value is reasoning text found inside a string payload, if any.
func decodeData(raw json.RawMessage) (map[string]interface{}, string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, "", fmt.Errorf("%w: response has no data", ErrMalformedResponse)
	}

	switch raw[0] {
	case '{':
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return m, "", nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return salvageJSON(s)
	}
	return nil, "", fmt.Errorf("%w: data is not an object", ErrMalformedResponse)
}

// salvageJSON pulls a JSON object out of raw model output: an optional
// <think>...</think> block, markdown code fences and surrounding prose are
// dropped.
func salvageJSON(s string) (map[string]interface{}, string, error) {
	think, rest := splitThink(s)
	rest = cleanJSON(rest)

	var m map[string]interface{}
	if err := json.Unmarshal([]byte(rest), &m); err == nil {
		return m, think, nil
	}

	start := strings.Index(rest, "{")
	end := strings.LastIndex(rest, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(rest[start:end+1]), &m); err == nil {
			return m, think, nil
		}
	}
	return nil, think, fmt.Errorf("%w: data is not json", ErrMalformedResponse)
}

func splitThink(s string) (think, rest string) {
	const open, closing = "<think>", "</think>"
	i := strings.Index(s, open)
	j := strings.Index(s, closing)
	if i < 0 || j < i {
		return "", s
	}
	return strings.TrimSpace(s[i+len(open) : j]), s[:i] + s[j+len(closing):]
}

// cleanJSON strips a surrounding ```json ... ``` fence.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
