package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// cleanJSONResponse strips markdown code fences and surrounding prose from a
// model response, leaving the first JSON object or array it contains.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the JSON. Slice out
	// the first object or array, whichever opens earlier.
	objStart := strings.Index(content, "{")
	arrStart := strings.Index(content, "[")

	start, closer := objStart, "}"
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		start, closer = arrStart, "]"
	}

	if start >= 0 {
		if end := strings.LastIndex(content, closer); end > start {
			content = content[start : end+1]
		}
	}
	return content
}

// decodeClassifications parses a classification response, tolerating fenced
// or prose-wrapped JSON.
func decodeClassifications(raw string) ([]Classification, error) {
	var out []Classification
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &out); err != nil {
		return nil, fmt.Errorf("decode classifications: %w", err)
	}
	return out, nil
}

// decodeVerdict parses a synthesis response, tolerating fenced or
// prose-wrapped JSON.
func decodeVerdict(raw string) (*Verdict, error) {
	var out Verdict
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &out); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}
	return &out, nil
}
