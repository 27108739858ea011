package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotIntentJSON signals extractor output that is not a JSON object or list.
var ErrNotIntentJSON = errors.New("extractor output is not intent JSON")

// Parse interprets raw extractor output as either a single intent object or a
// list of intent objects.
//
// A single object whose recognized fields are all null/empty yields an empty
// task list: the extractor understood the query and found no product intent,
// which is distinct from a parse failure. A list is passed through without
// that suppression, so an empty list stays empty.
//
// Fields of the wrong shape degrade to null rather than failing the request;
// unrecognized fields are ignored. List elements that are not objects are
// dropped, degrading only that task.
func Parse(raw string) ([]Task, error) {
	text := stripFences(strings.TrimSpace(raw))
	if text == "" {
		return nil, fmt.Errorf("empty extractor output: %w", ErrNotIntentJSON)
	}

	switch text[0] {
	case '{':
		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("parse intent object: %w", ErrNotIntentJSON)
		}
		t := fromObject(obj)
		if t.IsEmpty() {
			return []Task{}, nil
		}
		return []Task{t}, nil

	case '[':
		var items []any
		if err := json.Unmarshal([]byte(text), &items); err != nil {
			return nil, fmt.Errorf("parse intent list: %w", ErrNotIntentJSON)
		}
		tasks := make([]Task, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			tasks = append(tasks, fromObject(obj))
		}
		return tasks, nil

	default:
		return nil, fmt.Errorf("unexpected leading %q: %w", text[0], ErrNotIntentJSON)
	}
}

// fromObject coerces a decoded JSON object into a task. Every recognized
// field that is missing, null, or of the wrong shape becomes "no constraint".
func fromObject(obj map[string]any) Task {
	return Task{
		Category:    stringField(obj["category"]),
		ProductType: stringField(obj["product_type"]),
		Color:       stringField(obj["color"]),
		Occasion:    stringField(obj["occasion"]),
		Attributes:  stringList(obj["attributes"]),
	}
}

func stringField(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// stripFences removes a markdown code fence wrapper that LLMs add despite
// being told not to.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
