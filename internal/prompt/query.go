package prompt

import (
	"fmt"
	"strings"
)

// queryTextLimit keeps the document section of the prompt under the model's
// practical context budget.
const queryTextLimit = 50000

// QuerySystem is the system prompt for document Q&A.
const QuerySystem = "You are a technical document assistant. Answer questions accurately based only on the provided document. Always cite page numbers when referencing information."

// Query builds the document Q&A prompt, optionally threading the previous
// exchange for follow-up questions.
func Query(question, documentText string, totalPages int, previousQuestion, previousAnswer string) string {
	contextSection := ""
	followUpRule := ""
	if previousQuestion != "" && previousAnswer != "" {
		contextSection = fmt.Sprintf("\nPrevious conversation:\nQ: %s\nA: %s\n\n", previousQuestion, previousAnswer)
		followUpRule = "This is a follow-up question - you may reference the previous answer for context, but still cite page numbers from the document."
	}

	var b strings.Builder
	b.WriteString("You are a technical document assistant. Answer the user's question based ONLY on the provided document.\n")
	b.WriteString(contextSection)
	b.WriteString(`
IMPORTANT RULES:
1. Answer ONLY using information from the document below
2. If the answer is not in the document, respond with: "Not found in document."
3. When referencing information, include the page number (e.g., "According to page 5..." or "On page 10, it states...")
4. Be precise and cite specific pages
5. If you're uncertain, say so
`)
	if followUpRule != "" {
		b.WriteString("6. " + followUpRule + "\n")
	}
	fmt.Fprintf(&b, "\nDocument (%d pages):\n%s\n", totalPages, Truncate(documentText, queryTextLimit))
	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	b.WriteString("\nProvide a clear, accurate answer with page citations:")
	return b.String()
}

// Truncate cuts document text to at most limit bytes on a rune boundary.
func Truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8Start(text[limit]) {
		limit--
	}
	return text[:limit]
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }
