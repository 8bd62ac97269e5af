package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/pavelanni/trivium/internal/model"
)

// recencyWindow bounds how old a fact may be for current-events questions.
const recencyWindow = 10 * 24 * time.Hour

// categoryPrompt asks for the still-missing quantity of questions for one
// category, optionally grounded in recent headlines.
func categoryPrompt(category model.Category, count int, headlines []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create %d multiple-choice questions for the category %q. ", count, category)
	sb.WriteString("Provide exactly 4 choices per question, mark the correct answer, and include a short explanation. ")
	sb.WriteString("Return the output as JSON array with fields: question, choices (array), answerIndex (0-3), explanation.")
	if len(headlines) > 0 {
		sb.WriteString(" Use these headlines as grounding: ")
		sb.WriteString(strings.Join(headlines, " | "))
	}
	return sb.String()
}

// batchedPrompt asks for every category's questions in a single call. When
// the current-events category is requested, facts are constrained to the
// trailing recency window ending at now.
func batchedPrompt(categories []model.Category, perCategory int, now time.Time) string {
	labels := make([]string, len(categories))
	hasCurrentNews := false
	for i, c := range categories {
		labels[i] = string(c)
		if c == model.CategoryCurrentNews {
			hasCurrentNews = true
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a trivia expert. Generate exactly %d questions per category.\n", perCategory)
	fmt.Fprintf(&sb, "Categories: %s.\n\n", strings.Join(labels, ", "))

	if hasCurrentNews {
		today := now.Format("2006-01-02")
		windowStart := now.Add(-recencyWindow).Format("2006-01-02")
		fmt.Fprintf(&sb, "For %q: use facts from %s to %s only.\n", model.CategoryCurrentNews, windowStart, today)
		sb.WriteString("For others: use any verifiable facts.\n\n")
	} else {
		sb.WriteString("Use any verifiable facts.\n\n")
	}

	sb.WriteString("Output ONLY raw JSON (no markdown, no backticks, no extra text):\n")
	sb.WriteString(`[{"category":"CategoryName","questions":[{"question":"Q?","choices":["A","B","C","D"],"answerIndex":0,"explanation":"Why"}]}]`)
	return sb.String()
}
