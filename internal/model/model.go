package model

import (
	"strings"
	"time"
)

// Category is one of the fixed set of trivia categories a player can pick.
type Category string

const (
	CategoryCurrentNews   Category = "Current News and Events"
	CategoryHistory       Category = "History"
	CategoryGeography     Category = "Geography"
	CategoryEntertainment Category = "Entertainment"
	CategorySports        Category = "Sports"
	CategoryScience       Category = "Science"
	CategoryBusiness      Category = "Business"
	CategoryPopCulture    Category = "Pop Culture"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryCurrentNews,
	CategoryHistory,
	CategoryGeography,
	CategoryEntertainment,
	CategorySports,
	CategoryScience,
	CategoryBusiness,
	CategoryPopCulture,
}

// ParseCategory resolves a label to a known Category, ignoring case and
// surrounding whitespace. The second return value reports whether the label
// matched.
func ParseCategory(label string) (Category, bool) {
	trimmed := strings.TrimSpace(label)
	for _, c := range AllCategories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, true
		}
	}
	return "", false
}

// ChoicesPerQuestion is the number of choices every stored question carries.
const ChoicesPerQuestion = 4

// StoredQuestion is a validated, fully-assembled question. Once created it is
// never mutated; answers are evaluated against it.
type StoredQuestion struct {
	ID           string   `json:"id"`
	Category     Category `json:"category"`
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
	Fingerprint  string   `json:"fingerprint"`
	Source       string   `json:"source,omitempty"`
}

// PublicQuestion is the answer-stripped projection of a StoredQuestion.
// It is the only question form sent to a player before they answer.
type PublicQuestion struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Prompt   string   `json:"prompt"`
	Choices  []string `json:"choices"`
}

// Public returns the projection of q safe to send to the client.
func (q StoredQuestion) Public() PublicQuestion {
	return PublicQuestion{
		ID:       q.ID,
		Category: q.Category,
		Prompt:   q.Prompt,
		Choices:  q.Choices,
	}
}

// Game holds one completed game setup: the selected categories and the
// questions generated for them. Immutable after creation.
type Game struct {
	ID                 string           `json:"id"`
	SelectedCategories []Category       `json:"selectedCategories"`
	Questions          []StoredQuestion `json:"questions"`
	UsedFingerprints   []string         `json:"usedFingerprints"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// Question returns the stored question with the given id, if present.
func (g Game) Question(id string) (StoredQuestion, bool) {
	for _, q := range g.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return StoredQuestion{}, false
}

// PublicQuestions returns the answer-stripped projection of every question in
// the game, in order.
func (g Game) PublicQuestions() []PublicQuestion {
	public := make([]PublicQuestion, len(g.Questions))
	for i, q := range g.Questions {
		public[i] = q.Public()
	}
	return public
}
