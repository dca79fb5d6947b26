// Package prompt assembles the per-task prompts sent to the model. Prompts
// are built once per request and never mutated afterwards.
package prompt

import (
	"strings"

	"github.com/hardhat-ai/hardhat/internal/domain"
)

const scribeBase = `You are a professional construction communication assistant. Your job is to transform rough, casual, or even angry field notes into polished, professional emails suitable for business communication.

Key principles:
- Maintain all factual information and important details
- Use proper business email formatting
- Keep the message clear and professional
- Preserve the urgency or importance of the original message
- Use appropriate construction industry terminology
`

var scribeTones = map[string]string{
	"neutral": `
Tone: Professional and balanced. Use a straightforward, respectful tone that conveys information clearly without being overly formal or casual.
`,
	"firm": `
Tone: Direct and assertive. Use a confident, no-nonsense tone that shows authority and urgency. Be clear about expectations and deadlines.
`,
	"cya": `
Tone: CYA (Cover Your Ass) - Document everything thoroughly. Use a careful, detailed tone that creates a clear paper trail. Include specific dates, times, names, and actions. Emphasize what was communicated, when, and to whom. Make it clear that all parties were informed.
`,
}

// ScribeSystem returns the site-scribe system prompt for a tone. Unknown
// tones fall back to neutral.
func ScribeSystem(tone string) string {
	instructions, ok := scribeTones[tone]
	if !ok {
		instructions = scribeTones["neutral"]
	}
	return scribeBase + instructions
}

// Scribe builds the site-scribe user prompt from the raw field notes and
// optional email metadata.
func Scribe(req domain.TransformRequest) string {
	var meta []string
	if req.ToEmail != "" {
		meta = append(meta, "To: "+recipient(req.ToName, req.ToEmail))
	}
	if req.FromEmail != "" {
		meta = append(meta, "From: "+recipient(req.FromName, req.FromEmail))
	}
	if req.CC != "" {
		meta = append(meta, "CC: "+req.CC)
	}
	if req.BCC != "" {
		meta = append(meta, "BCC: "+req.BCC)
	}
	if req.Subject != "" {
		meta = append(meta, "Subject: "+req.Subject)
	}

	metaSection := ""
	if len(meta) > 0 {
		metaSection = "\n\nEmail Details:\n" + strings.Join(meta, "\n") + "\n"
	}

	subjectInstruction := "Generate an appropriate subject line."
	if req.Subject != "" {
		subjectInstruction = "Use the provided subject line above."
	}

	var b strings.Builder
	b.WriteString("Transform the following field notes into a professional email. Maintain all important information, but make it suitable for sending to clients, supervisors, or other stakeholders.\n")
	b.WriteString(metaSection)
	b.WriteString("\nField Notes:\n")
	b.WriteString(req.Text)
	b.WriteString("\n\nPlease generate a professional email that:\n")
	b.WriteString("1. " + subjectInstruction + "\n")
	b.WriteString("2. Includes a professional greeting (use recipient name if provided)\n")
	b.WriteString("3. Transforms the rough notes into clear, professional language\n")
	b.WriteString("4. Maintains all important details and facts\n")
	b.WriteString("5. Ends with an appropriate closing and signature\n")
	b.WriteString("\nGenerate the complete email now:")
	return b.String()
}

func recipient(name, email string) string {
	if name != "" {
		return name + " <" + email + ">"
	}
	return email
}
