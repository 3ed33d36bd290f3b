package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Models are asked for a bare JSON array but sometimes wrap it in prose.
// Greedy so nested arrays inside the ideas stay intact.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ParseProjectIdeas extracts the project-idea array from model output.
// Direct parse first; failing that, the first bracketed span is tried.
// This is a tolerance policy over a non-deterministic upstream, not a
// guaranteed parser.
func ParseProjectIdeas(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)

	var direct any
	if err := json.Unmarshal([]byte(trimmed), &direct); err == nil {
		return json.RawMessage(trimmed), nil
	}

	match := arrayPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("failed to parse project ideas")
	}

	var arr any
	if err := json.Unmarshal([]byte(match), &arr); err != nil {
		return nil, fmt.Errorf("failed to parse project ideas: %w", err)
	}
	return json.RawMessage(match), nil
}
