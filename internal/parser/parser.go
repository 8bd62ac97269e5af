// Package parser turns raw LLM output into candidate question records.
// Provider output is never trusted: the strict tier handles well-formed (or
// nearly well-formed) JSON, the salvage tier scrapes recognizable field
// patterns out of anything else. Nothing in this package returns an error;
// unusable input yields an empty result and the caller decides what to do.
package parser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Candidate is an unvalidated question record straight out of parsing.
// It may have too few choices, an out-of-range answer index, or empty text.
type Candidate struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation,omitempty"`
}

// Section groups candidates under the category label the provider assigned.
// A flat (unsectioned) response parses into a single Section with an empty
// Category.
type Section struct {
	Category  string
	Questions []Candidate
}

// strictEntry accepts both response shapes: a question object, or a
// {category, questions} section wrapping question objects.
type strictEntry struct {
	Category    string      `json:"category"`
	Questions   []Candidate `json:"questions"`
	Question    string      `json:"question"`
	Choices     []string    `json:"choices"`
	AnswerIndex int         `json:"answerIndex"`
	Explanation string      `json:"explanation,omitempty"`
}

var (
	fenceOpen     = regexp.MustCompile("^```(?:json)?\n?")
	fenceClose    = regexp.MustCompile("\n?```$")
	embeddedBreak = regexp.MustCompile(`[\r\n\t]+`)
)

// Clean prepares raw provider output for strict JSON parsing: surrounding
// code fences are stripped and literal newlines/tabs are collapsed to single
// spaces. Providers sometimes emit raw line breaks inside otherwise-valid
// JSON string values, which breaks the decoder.
func Clean(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")
	return embeddedBreak.ReplaceAllString(cleaned, " ")
}

// ParseStrict decodes raw as JSON after cleanup. It accepts either a flat
// array of question objects or an array of per-category sections. A flat
// array comes back as one Section with an empty Category. Returns nil when
// the payload is not valid JSON of either shape.
func ParseStrict(raw string) []Section {
	var entries []strictEntry
	if err := json.Unmarshal([]byte(Clean(raw)), &entries); err != nil {
		return nil
	}

	sectioned := false
	for _, e := range entries {
		if len(e.Questions) > 0 {
			sectioned = true
			break
		}
	}

	if sectioned {
		var sections []Section
		for _, e := range entries {
			if len(e.Questions) == 0 {
				continue
			}
			sections = append(sections, Section{Category: e.Category, Questions: e.Questions})
		}
		return sections
	}

	var flat []Candidate
	for _, e := range entries {
		flat = append(flat, Candidate{
			Question:    e.Question,
			Choices:     e.Choices,
			AnswerIndex: e.AnswerIndex,
			Explanation: e.Explanation,
		})
	}
	if len(flat) == 0 {
		return nil
	}
	return []Section{{Questions: flat}}
}

// Parse returns a best-effort flat candidate list: the strict tier first,
// then the salvage tier when strict parsing fails or yields nothing usable.
// May return an empty slice; never an error.
func Parse(raw string) []Candidate {
	var flat []Candidate
	for _, section := range ParseStrict(raw) {
		flat = append(flat, section.Questions...)
	}

	usable := 0
	for _, c := range flat {
		if _, ok := Normalize(c); ok {
			usable++
		}
	}
	if usable > 0 {
		return flat
	}

	return Salvage(raw)
}

// Normalize applies the usability checks to a candidate: non-empty question
// text, at least four choices (extras beyond four are dropped), and an answer
// index within the kept choices. Returns the normalized candidate and whether
// it is usable.
func Normalize(c Candidate) (Candidate, bool) {
	c.Question = strings.TrimSpace(c.Question)
	if c.Question == "" {
		return c, false
	}
	if len(c.Choices) < 4 {
		return c, false
	}
	c.Choices = c.Choices[:4]
	if c.AnswerIndex < 0 || c.AnswerIndex > 3 {
		return c, false
	}
	return c, true
}
