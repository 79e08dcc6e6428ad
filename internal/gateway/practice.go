package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/llm"
)

// MaxPracticeQuestions caps a single practice request.
const MaxPracticeQuestions = 10

// PracticeIDBase offsets generated question IDs away from the static
// pools so a session never confuses the two.
const PracticeIDBase = 100_000

// ErrNoBackend is returned by operations that have no fallback content.
var ErrNoBackend = errors.New("no AI backend configured")

var practiceSchema = &llm.Schema{
	Name:        "practice-questions",
	Description: "Fill-in-the-blank multiple choice questions for one English tense",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sentence": map[string]any{
							"type":        "string",
							"description": "A sentence with exactly one blank written as ___",
						},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
							"maxItems": 4,
						},
						"correct":     map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
					},
					"required":             []string{"sentence", "options", "correct", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"questions"},
		"additionalProperties": false,
	},
}

const practiceSystem = `You write short English grammar drills for learners. Every sentence has exactly one blank written as ___. Offer four answer options of which exactly one is correct for the requested tense. The explanation is one friendly sentence naming the clue that decides the tense.`

type practiceOutput struct {
	Questions []struct {
		Sentence    string   `json:"sentence"`
		Options     []string `json:"options"`
		Correct     string   `json:"correct"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// Practice asks the model for n fresh questions on one tense. Items
// whose correct answer is not among the options, or whose sentence has
// no blank, are dropped. The result is a Pool ready for quiz.Start.
func (g *Gateway) Practice(ctx context.Context, tenseID string, n int) (catalog.Pool, error) {
	tense, err := catalog.GetTense(tenseID)
	if err != nil {
		return catalog.Pool{}, err
	}
	if g == nil || g.structured == nil {
		return catalog.Pool{}, ErrNoBackend
	}
	n = min(max(n, 1), MaxPracticeQuestions)

	ctx, cancel := g.withTimeout(ctx, PurposePractice, g.textTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Write %d questions practising the %s (%s). Formula: %s. Signal words: %s.",
		n, tense.Name, tense.Description, tense.Formula, strings.Join(tense.SignalWords, ", "))
	resp, err := g.structured.Generate(ctx, llm.Request{
		System:      practiceSystem,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      practiceSchema,
		MaxTokens:   2048,
		Temperature: 0.8,
	})
	if err != nil {
		return catalog.Pool{}, fmt.Errorf("generate practice: %w", err)
	}

	var out practiceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return catalog.Pool{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	pool := catalog.Pool{Name: "practice-" + tense.ID}
	for _, item := range out.Questions {
		sentence := strings.TrimSpace(item.Sentence)
		correct := strings.TrimSpace(item.Correct)
		options := make([]string, 0, len(item.Options))
		for _, o := range item.Options {
			if o = strings.TrimSpace(o); o != "" && !slices.Contains(options, o) {
				options = append(options, o)
			}
		}
		if !strings.Contains(sentence, catalog.Blank) || !slices.Contains(options, correct) || len(options) < 2 {
			continue
		}
		pool.Questions = append(pool.Questions, catalog.Question{
			ID:          PracticeIDBase + len(pool.Questions) + 1,
			Sentence:    sentence,
			Correct:     correct,
			Options:     options,
			Tense:       tense.Name,
			Explanation: strings.TrimSpace(item.Explanation),
		})
		if len(pool.Questions) == n {
			break
		}
	}
	if len(pool.Questions) == 0 {
		return catalog.Pool{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("no usable questions")}
	}
	return pool, nil
}
