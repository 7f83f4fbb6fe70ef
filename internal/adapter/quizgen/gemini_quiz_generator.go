package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// promptTemplate is the single fixed instruction the generator sends. The
// model is told to answer with one bare JSON object; it still wraps the
// object in a markdown fence often enough that parsing has to tolerate it.
const promptTemplate = `You are an AI assistant that generates educational quizzes.

SOURCE TEXT:
%s

SECTIONS:
%s

TASK:
1. Extract key entities (People, Organizations, Locations).
2. Generate 5-10 multiple-choice questions (easy, medium, hard).
3. Suggest 3-5 related topics.

OUTPUT JSON (No markdown):
{
    "key_entities": { "people": [], "organizations": [], "locations": [] },
    "quiz": [
        {
            "question": "...",
            "options": ["A", "B", "C", "D"],
            "answer": "...",
            "difficulty": "easy",
            "explanation": "..."
        }
    ],
    "related_topics": []
}`

// GeminiQuizGenerator implements domain.QuizGenerationService on top of a
// langchaingo model client.
type GeminiQuizGenerator struct {
	llm       llms.Model
	modelName string
	logger    *zap.Logger
}

// NewGeminiQuizGenerator creates a new generator. The model client is passed
// in rather than built from ambient state so tests can substitute a fake.
func NewGeminiQuizGenerator(llm llms.Model, cfg config.GeminiConfig, logger *zap.Logger) (domain.QuizGenerationService, error) {
	if llm == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}
	logger.Info("Initializing GeminiQuizGenerator", zap.String("model", cfg.Model))
	return &GeminiQuizGenerator{
		llm:       llm,
		modelName: cfg.Model,
		logger:    logger,
	}, nil
}

// GenerateQuiz builds the prompt from the document, invokes the model once
// and parses the response into a GeneratedQuiz.
func (g *GeminiQuizGenerator) GenerateQuiz(ctx context.Context, doc *domain.NormalizedDocument) (*domain.GeneratedQuiz, error) {
	prompt := fmt.Sprintf(promptTemplate, doc.BodyText, strings.Join(doc.SectionTitles, ", "))

	g.logger.Debug("Invoking LLM for quiz generation",
		zap.String("model", g.modelName),
		zap.String("title", doc.Title),
		zap.Int("prompt_len", len(prompt)),
	)

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithModel(g.modelName))
	if err != nil {
		g.logger.Error("LLM call failed", zap.Error(err), zap.String("title", doc.Title))
		return nil, domain.NewGenerationError(err)
	}

	generated, err := parseResponse(response)
	if err != nil {
		g.logger.Error("Failed to parse LLM response",
			zap.Error(err),
			zap.String("raw_response", response),
		)
		return nil, err
	}

	g.logger.Info("Quiz generated",
		zap.String("title", doc.Title),
		zap.Int("num_questions", len(generated.Questions)),
		zap.Int("num_related_topics", len(generated.RelatedTopics)),
	)
	return generated, nil
}

// llmQuestion mirrors one question object in the response JSON
type llmQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// llmPayload mirrors the top-level response JSON. Pointer and slice fields
// distinguish absent keys so the defaulting table below can fill them in.
type llmPayload struct {
	KeyEntities *struct {
		People        []string `json:"people"`
		Organizations []string `json:"organizations"`
		Locations     []string `json:"locations"`
	} `json:"key_entities"`
	Quiz          []llmQuestion `json:"quiz"`
	RelatedTopics []string      `json:"related_topics"`
}

// parseResponse turns the raw model text into a GeneratedQuiz.
//
// The text is taken verbatim apart from surrounding whitespace and an
// optional markdown code fence: a leading "```json" or "```" marker and a
// trailing "```" marker are cut off when present. What remains must be one
// JSON document; anything else is a parse failure that carries the raw text.
//
// Defaulting table, applied after parsing: key_entities and each of its
// sub-keys default to empty; quiz defaults to an empty sequence;
// related_topics defaults to an empty sequence. Individual questions are not
// validated here: wrong option counts, answers missing from the options and
// unrecognized difficulty labels all pass through unchanged.
func parseResponse(raw string) (*domain.GeneratedQuiz, error) {
	content := strings.TrimSpace(raw)

	if strings.HasPrefix(content, "```json") {
		content = content[7:]
	} else if strings.HasPrefix(content, "```") {
		content = content[3:]
	}
	if strings.HasSuffix(content, "```") {
		content = content[:len(content)-3]
	}

	var payload llmPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, domain.NewGenerationParseError(raw, err)
	}

	entities := domain.KeyEntities{
		People:        []string{},
		Organizations: []string{},
		Locations:     []string{},
	}
	if payload.KeyEntities != nil {
		if payload.KeyEntities.People != nil {
			entities.People = payload.KeyEntities.People
		}
		if payload.KeyEntities.Organizations != nil {
			entities.Organizations = payload.KeyEntities.Organizations
		}
		if payload.KeyEntities.Locations != nil {
			entities.Locations = payload.KeyEntities.Locations
		}
	}

	questions := make([]domain.Question, len(payload.Quiz))
	for i, q := range payload.Quiz {
		questions[i] = domain.Question{
			QuestionText: q.Question,
			Options:      q.Options,
			Answer:       q.Answer,
			Difficulty:   q.Difficulty,
			Explanation:  q.Explanation,
		}
	}

	topics := payload.RelatedTopics
	if topics == nil {
		topics = []string{}
	}

	return &domain.GeneratedQuiz{
		KeyEntities:   entities,
		Questions:     questions,
		RelatedTopics: topics,
	}, nil
}

var _ domain.QuizGenerationService = (*GeminiQuizGenerator)(nil)
