package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Field patterns for the salvage tier. These deliberately match JSON-looking
// fragments without requiring the surrounding structure to be valid.
var (
	questionRe    = regexp.MustCompile(`"question"\s*:\s*"([^"]+)"`)
	choicesRe     = regexp.MustCompile(`"choices"\s*:\s*\[([^\]]+)\]`)
	answerIndexRe = regexp.MustCompile(`"answerIndex"\s*:\s*(\d+)`)
	explanationRe = regexp.MustCompile(`"explanation"\s*:\s*"([^"]+)"`)
)

// Salvage scans raw text for question/choices/answerIndex/explanation field
// patterns and pairs the i-th occurrence of each into a candidate. The result
// is bounded by the shortest of the three required field lists. Records with
// fewer than four choices are dropped; the answer index is clamped into
// [0,3]. Output is best-effort and must be validated again before use.
func Salvage(raw string) []Candidate {
	questions := questionRe.FindAllStringSubmatch(raw, -1)
	choiceLists := choicesRe.FindAllStringSubmatch(raw, -1)
	answers := answerIndexRe.FindAllStringSubmatch(raw, -1)
	explanations := explanationRe.FindAllStringSubmatch(raw, -1)

	count := len(questions)
	if len(choiceLists) < count {
		count = len(choiceLists)
	}
	if len(answers) < count {
		count = len(answers)
	}

	var out []Candidate
	for i := 0; i < count; i++ {
		question := questions[i][1]
		choices := splitChoices(choiceLists[i][1])
		if question == "" || len(choices) < 4 {
			continue
		}

		answerIndex, _ := strconv.Atoi(answers[i][1])
		if answerIndex > 3 {
			answerIndex = 3
		}

		explanation := ""
		if i < len(explanations) {
			explanation = explanations[i][1]
		}

		out = append(out, Candidate{
			Question:    question,
			Choices:     choices[:4],
			AnswerIndex: answerIndex,
			Explanation: explanation,
		})
	}
	return out
}

// splitChoices breaks a bracketed choice list body on commas, trimming
// whitespace and surrounding quotes, and drops empty entries.
func splitChoices(body string) []string {
	var choices []string
	for _, part := range strings.Split(body, ",") {
		choice := strings.TrimSpace(part)
		choice = strings.Trim(choice, `"'`)
		if choice != "" {
			choices = append(choices, choice)
		}
	}
	return choices
}
