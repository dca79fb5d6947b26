package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hardhat-ai/hardhat/internal/domain"
)

// Page-number mentions the model tends to produce in its answers.
var pagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)page\s+(\d+)`),
	regexp.MustCompile(`(?i)p\.\s*(\d+)`),
	regexp.MustCompile(`(?i)p\s+(\d+)`),
	regexp.MustCompile(`(?i)on\s+page\s+(\d+)`),
	regexp.MustCompile(`(?i)pages?\s+(\d+)`),
}

var sentenceSplit = regexp.MustCompile(`[.!?]\s+`)

const (
	minSnippetLen   = 20
	maxSnippetLen   = 500
	fallbackExcerpt = 300
)

// Citations scans a reply for page references and builds one citation per
// distinct in-range page, picking the page sentence that best matches the
// question's keywords as the snippet.
func Citations(response string, pageTexts map[int]string, question string) []domain.Citation {
	found := map[int]bool{}
	for _, pattern := range pagePatterns {
		for _, m := range pattern.FindAllStringSubmatch(response, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n >= 1 && n <= len(pageTexts) {
				found[n] = true
			}
		}
	}

	pages := make([]int, 0, len(found))
	for n := range found {
		pages = append(pages, n)
	}
	sort.Ints(pages)

	keywords := questionKeywords(question)

	citations := make([]domain.Citation, 0, len(pages))
	for _, n := range pages {
		pageText := pageTexts[n]
		citations = append(citations, domain.Citation{
			Page:    n,
			Section: guessSection(pageText),
			Text:    truncate(bestSnippet(pageText, keywords), maxSnippetLen),
		})
	}
	return citations
}

func questionKeywords(question string) map[string]bool {
	keywords := map[string]bool{}
	for _, w := range strings.Fields(question) {
		if len(w) > 3 {
			keywords[strings.ToLower(w)] = true
		}
	}
	return keywords
}

// bestSnippet prefers the highest keyword-scoring sentence longer than 20
// chars, then the first such sentence, then the page's first 300 chars.
func bestSnippet(pageText string, keywords map[string]bool) string {
	sentences := sentenceSplit.Split(pageText, -1)

	best := ""
	bestScore := 0
	for _, sentence := range sentences {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= minSnippetLen {
			continue
		}
		lower := strings.ToLower(trimmed)
		score := 0
		for kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = trimmed
		}
	}
	if best != "" {
		return best
	}

	for _, sentence := range sentences {
		if trimmed := strings.TrimSpace(sentence); len(trimmed) > minSnippetLen {
			return trimmed
		}
	}

	excerpt := strings.TrimSpace(truncate(pageText, fallbackExcerpt))
	if len(pageText) > fallbackExcerpt {
		excerpt += "..."
	}
	return excerpt
}

// guessSection scans the page's first 10 lines for something that looks
// like a heading: an all-caps line, or a numbered line like "3.2 Scope".
func guessSection(pageText string) string {
	lines := strings.Split(pageText, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isAllCaps(trimmed) && len(trimmed) > 5 && len(trimmed) < 100 {
			return trimmed
		}
		head := trimmed
		if len(head) > 10 {
			head = head[:10]
		}
		if r, _ := utf8.DecodeRuneInString(trimmed); unicode.IsDigit(r) && strings.Contains(head, ".") {
			return trimmed
		}
	}
	return ""
}

// isAllCaps reports whether s contains at least one letter and no
// lower-case letters.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
