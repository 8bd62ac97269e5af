// Package generator orchestrates question generation: it prompts the
// provider chain, parses whatever comes back, filters duplicates by
// fingerprint, and assembles validated game questions.
package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/trivium/internal/llm"
	"github.com/pavelanni/trivium/internal/model"
	"github.com/pavelanni/trivium/internal/news"
	"github.com/pavelanni/trivium/internal/parser"
	"github.com/pavelanni/trivium/internal/store"
)

// defaultMaxAttempts bounds the per-category regeneration loop.
const defaultMaxAttempts = 6

// Generator builds validated question sets through the provider chain.
type Generator struct {
	chain       *llm.Chain
	news        *news.Client
	maxAttempts int
	now         func() time.Time
}

// New creates a Generator. newsClient may be nil (no headline grounding);
// maxAttempts <= 0 selects the default ceiling.
func New(chain *llm.Chain, newsClient *news.Client, maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Generator{
		chain:       chain,
		news:        newsClient,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// ForCategory generates up to count questions for a single category,
// retrying with missing-quantity prompts until the count is met or the
// attempt ceiling is exhausted. Callers must tolerate a short result.
// Fingerprints in exclude are skipped; accepted fingerprints are added to it.
func (g *Generator) ForCategory(ctx context.Context, category model.Category, count int, exclude store.FingerprintSet) ([]model.StoredQuestion, error) {
	if exclude == nil {
		exclude = store.FingerprintSet{}
	}

	var headlines []string
	if category == model.CategoryCurrentNews {
		headlines = g.news.TopHeadlines(ctx)
	}

	var results []model.StoredQuestion
	for attempt := 1; len(results) < count && attempt <= g.maxAttempts; attempt++ {
		slog.Info("generating questions",
			"category", category,
			"need", count-len(results),
			"attempt", attempt,
		)

		prompt := categoryPrompt(category, count-len(results), headlines)
		raw, source, err := g.chain.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}

		for _, c := range parser.Parse(raw) {
			q, ok := g.promote(c, category, source, exclude)
			if !ok {
				continue
			}
			results = append(results, q)
			if len(results) >= count {
				break
			}
		}
	}

	return results, nil
}

// ForCategories generates perCategory questions for every requested category
// in a single batched provider call. Structured per-category sections are
// consumed directly; when strict parsing yields nothing, candidates salvaged
// from the raw text are assigned round-robin across the requested categories.
// Total output never exceeds len(categories)*perCategory, but may fall short.
func (g *Generator) ForCategories(ctx context.Context, categories []model.Category, perCategory int, exclude store.FingerprintSet) ([]model.StoredQuestion, error) {
	if exclude == nil {
		exclude = store.FingerprintSet{}
	}
	total := len(categories) * perCategory

	slog.Info("generating batched questions", "categories", categories, "per_category", perCategory)

	raw, source, err := g.chain.Generate(ctx, batchedPrompt(categories, perCategory, g.now()))
	if err != nil {
		return nil, err
	}

	sections := parser.ParseStrict(raw)
	if len(sections) == 0 {
		slog.Warn("strict parse yielded nothing, salvaging raw output")
		return g.assignRoundRobin(parser.Salvage(raw), categories, total, source, exclude), nil
	}

	var results []model.StoredQuestion
	for _, section := range sections {
		if len(results) >= total {
			break
		}

		if section.Category == "" {
			// Unlabeled flat response: distribute like the salvage path.
			results = append(results, g.assignRoundRobin(section.Questions, categories, total-len(results), source, exclude)...)
			continue
		}

		category, ok := matchCategory(section.Category, categories)
		if !ok {
			slog.Warn("skipping section for unrequested category", "category", section.Category)
			continue
		}

		candidates := section.Questions
		if len(candidates) > perCategory {
			candidates = candidates[:perCategory]
		}
		for _, c := range candidates {
			q, ok := g.promote(c, category, source, exclude)
			if !ok {
				continue
			}
			results = append(results, q)
			if len(results) >= total {
				break
			}
		}
	}

	return results, nil
}

// promote validates a candidate and lifts it into a StoredQuestion.
// Unusable candidates and fingerprint duplicates are silently dropped;
// accepted fingerprints are recorded in exclude.
func (g *Generator) promote(c parser.Candidate, category model.Category, source string, exclude store.FingerprintSet) (model.StoredQuestion, bool) {
	c, ok := parser.Normalize(c)
	if !ok {
		return model.StoredQuestion{}, false
	}

	fp := store.FingerprintOf(c.Question, c.Choices[c.AnswerIndex])
	if exclude.Has(fp) {
		return model.StoredQuestion{}, false
	}
	exclude.Add(fp)

	return model.StoredQuestion{
		ID:           uuid.NewString(),
		Category:     category,
		Prompt:       c.Question,
		Choices:      c.Choices,
		CorrectIndex: c.AnswerIndex,
		Explanation:  c.Explanation,
		Fingerprint:  fp,
		Source:       source,
	}, true
}

// assignRoundRobin promotes candidates with categories assigned in request
// order, advancing only on acceptance, up to limit.
func (g *Generator) assignRoundRobin(candidates []parser.Candidate, categories []model.Category, limit int, source string, exclude store.FingerprintSet) []model.StoredQuestion {
	if len(categories) == 0 || limit <= 0 {
		return nil
	}

	var results []model.StoredQuestion
	idx := 0
	for _, c := range candidates {
		q, ok := g.promote(c, categories[idx%len(categories)], source, exclude)
		if !ok {
			continue
		}
		results = append(results, q)
		idx++
		if len(results) >= limit {
			break
		}
	}
	return results
}

// matchCategory resolves a section label against the requested categories.
func matchCategory(label string, requested []model.Category) (model.Category, bool) {
	category, ok := model.ParseCategory(label)
	if !ok {
		return "", false
	}
	for _, c := range requested {
		if c == category {
			return category, true
		}
	}
	return "", false
}
