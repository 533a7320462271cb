package genai

import (
	"fmt"
	"regexp"
	"strings"
)

// TopicsPrompt asks for n learning topics as a numbered list.
func TopicsPrompt(subject string, n int) string {
	return fmt.Sprintf(`You are an expert curriculum designer. List exactly %d learning topics for someone studying %q, ordered from fundamentals to advanced.

Return only a numbered list, one topic per line, with no descriptions.`, n, subject)
}

// MotivationPrompt asks for a short personalised quote in the
// "Quote text" - Author format.
func MotivationPrompt(userInput, subject string, challenges, positives []string) string {
	situation := "working on their studies"
	if len(challenges) > 0 {
		situation = strings.Join(challenges, ", ")
	}
	if subject != "" {
		situation += " in " + subject
	}
	if len(positives) > 0 {
		situation += " while " + strings.Join(positives, ", ")
	}

	return fmt.Sprintf(`Create a personalized, encouraging response for someone who said: %q

They are currently %s.

Generate a motivational quote that:
- Directly addresses their specific situation
- Acknowledges their feelings without dismissing them
- Provides hope and actionable encouragement
- Is under 40 words

Format: "Quote text" - Author Name
Use "AI Learning Coach" as the author for original quotes.`, userInput, situation)
}

// SummaryPrompt asks for a bullet-point summary of a document.
func SummaryPrompt(document string) string {
	return fmt.Sprintf(`You are a professional study assistant. Below is the text of a study document.
Provide a concise, high-level summary of this material in clear, easy-to-understand bullet points.

--- DOCUMENT TEXT ---
%s
--- END OF TEXT ---

Summary:`, document)
}

// QuestionPrompt asks the model to answer question from document only.
func QuestionPrompt(document, question string) string {
	return fmt.Sprintf(`You are a professional study assistant. Use the following document text to answer the user's question.
If the answer is not found in the text, state that clearly. Do not make up information.

--- DOCUMENT TEXT ---
%s
--- END OF TEXT ---

User Question: %q

Answer:`, document, question)
}

var (
	listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•+])\s*`)
	emphasis   = regexp.MustCompile(`\*\*|__|\*|` + "`")
)

// ParseList extracts items from a numbered or bulleted list, dropping
// markdown emphasis, blank lines and heading lines ending in a colon.
func ParseList(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(emphasis.ReplaceAllString(line, ""))
		line = strings.TrimLeft(line, "# ")
		item := strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if item == "" || strings.HasSuffix(item, ":") {
			continue
		}
		out = append(out, item)
	}
	return out
}

var quotePattern = regexp.MustCompile(`"([^"]+)"\s*[-–—]\s*(.+)`)

// DefaultQuoteAuthor is credited when a generated quote names nobody.
const DefaultQuoteAuthor = "AI Learning Coach"

// ParseQuote splits `"text" - Author`. Without quote marks the whole text
// is the quote.
func ParseQuote(text string) (quote, author string) {
	if m := quotePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(text), DefaultQuoteAuthor
}
