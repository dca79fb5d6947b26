// Package parse turns free-text model replies into structured results. The
// model wraps its JSON in prose and code fences often enough that every
// task parser runs the same recovery ladder; parsers degrade to a
// success=false result instead of returning errors.
package parse

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// rawPreviewLen bounds the reply excerpt carried in a failed parse summary.
const rawPreviewLen = 500

// Recover unmarshals the first recoverable JSON object in raw into v,
// trying candidates in a fixed priority order:
//  1. a fenced code block,
//  2. the balanced object enclosing the anchor key,
//  3. the first balanced object anywhere,
//  4. the whole reply.
//
// Returns false when no candidate parses.
func Recover(raw, anchor string, v any) bool {
	for _, candidate := range candidates(raw, anchor) {
		if json.Unmarshal([]byte(candidate), v) == nil {
			return true
		}
	}
	return false
}

func candidates(raw, anchor string) []string {
	var out []string
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		out = append(out, m[1])
	}
	if anchor != "" {
		if s := anchoredObject(raw, anchor); s != "" {
			out = append(out, s)
		}
	}
	if start := strings.Index(raw, "{"); start != -1 {
		if s := balancedObject(raw, start); s != "" {
			out = append(out, s)
		}
	}
	out = append(out, raw)
	return out
}

// anchoredObject finds the balanced object enclosing the anchor key: it
// scans from the nearest '{' before the anchor, or failing that the first
// '{' after it.
func anchoredObject(raw, anchor string) string {
	idx := strings.Index(raw, anchor)
	if idx == -1 {
		return ""
	}
	start := strings.LastIndex(raw[:idx], "{")
	if start == -1 {
		after := strings.Index(raw[idx:], "{")
		if after == -1 {
			return ""
		}
		start = idx + after
	}
	return balancedObject(raw, start)
}

// balancedObject returns the substring from start to the brace that closes
// it, counting nested pairs. Unterminated objects return the tail from
// start, matching the lenient original behavior.
func balancedObject(raw string, start int) string {
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return raw[start:]
}

// preview returns the head of a reply for failure summaries.
func preview(raw string) string {
	return truncate(strings.TrimSpace(raw), rawPreviewLen)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
