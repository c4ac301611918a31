package utils

import (
	"encoding/json"
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitList accepts either a JSON array of strings or a comma separated list.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	out := []string{}
	if raw == "" {
		return out
	}
	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			for _, s := range arr {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LikePattern wraps a search term for a case-insensitive substring match.
func LikePattern(term string) string {
	term = strings.ToLower(NormalizeSpace(term))
	term = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(term)
	return "%" + term + "%"
}
