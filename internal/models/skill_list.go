package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SkillList accepts either a JSON array of names or a single comma
// separated string ("Go, SQL").
type SkillList []string

func (l *SkillList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = SplitSkills(s)
		return nil
	}

	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("skills must be a list of names or a comma separated string: %w", err)
	}
	*l = names
	return nil
}

// SplitSkills splits a comma separated list and trims every entry.
func SplitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// Normalize trims names, drops empty ones and collapses exact duplicates
// while keeping first-seen order. Matching is case-sensitive.
func (l SkillList) Normalize() []string {
	seen := make(map[string]struct{}, len(l))
	out := make([]string, 0, len(l))
	for _, name := range l {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
