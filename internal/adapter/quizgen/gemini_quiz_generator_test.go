package quizgen

import (
	"context"
	"errors"
	"testing"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// fakeModel returns a fixed response (or error) for every prompt
type fakeModel struct {
	response string
	err      error
	calls    int
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.calls++
	return f.response, f.err
}

func testConfig() config.GeminiConfig {
	return config.GeminiConfig{APIKey: "test-key", Model: "gemini-2.0-flash-lite"}
}

func testDocument() *domain.NormalizedDocument {
	return &domain.NormalizedDocument{
		Title:         "Ada Lovelace",
		Summary:       "Ada Lovelace was an English mathematician.",
		BodyText:      "Ada Lovelace was an English mathematician and writer.",
		SectionTitles: []string{"Early life", "Legacy"},
	}
}

func TestNewGeminiQuizGenerator(t *testing.T) {
	t.Run("NilLLM", func(t *testing.T) {
		_, err := NewGeminiQuizGenerator(nil, testConfig(), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("EmptyModelName", func(t *testing.T) {
		_, err := NewGeminiQuizGenerator(&fakeModel{}, config.GeminiConfig{APIKey: "k"}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestGenerateQuiz_FullResponse(t *testing.T) {
	model := &fakeModel{response: `{
		"key_entities": {
			"people": ["Ada Lovelace", "Charles Babbage"],
			"organizations": [],
			"locations": ["London"]
		},
		"quiz": [
			{
				"question": "Who designed the Analytical Engine?",
				"options": ["Charles Babbage", "Alan Turing", "Ada Lovelace", "George Boole"],
				"answer": "Charles Babbage",
				"difficulty": "easy",
				"explanation": "Babbage designed it; Lovelace wrote about it."
			}
		],
		"related_topics": ["Analytical Engine", "History of computing", "Charles Babbage"]
	}`}

	g, err := NewGeminiQuizGenerator(model, testConfig(), zap.NewNop())
	require.NoError(t, err)

	generated, err := g.GenerateQuiz(context.Background(), testDocument())
	require.NoError(t, err)

	assert.Equal(t, []string{"Ada Lovelace", "Charles Babbage"}, generated.KeyEntities.People)
	assert.Empty(t, generated.KeyEntities.Organizations)
	assert.Equal(t, []string{"London"}, generated.KeyEntities.Locations)

	require.Len(t, generated.Questions, 1)
	q := generated.Questions[0]
	assert.Equal(t, "Who designed the Analytical Engine?", q.QuestionText)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, "Charles Babbage", q.Answer)
	assert.Equal(t, "easy", q.Difficulty)

	assert.Len(t, generated.RelatedTopics, 3)
	assert.Equal(t, 1, model.calls)
}

func TestGenerateQuiz_FencedResponseWithMissingKeys(t *testing.T) {
	model := &fakeModel{response: "```json\n{\"quiz\": []}\n```"}

	g, err := NewGeminiQuizGenerator(model, testConfig(), zap.NewNop())
	require.NoError(t, err)

	generated, err := g.GenerateQuiz(context.Background(), testDocument())
	require.NoError(t, err)

	// Missing keys fall back to the defaulting table
	assert.Empty(t, generated.KeyEntities.People)
	assert.Empty(t, generated.KeyEntities.Organizations)
	assert.Empty(t, generated.KeyEntities.Locations)
	assert.Empty(t, generated.Questions)
	assert.NotNil(t, generated.RelatedTopics)
	assert.Empty(t, generated.RelatedTopics)
}

func TestGenerateQuiz_BareFencedResponse(t *testing.T) {
	model := &fakeModel{response: "```\n{\"related_topics\": [\"Topic A\"]}\n```"}

	g, err := NewGeminiQuizGenerator(model, testConfig(), zap.NewNop())
	require.NoError(t, err)

	generated, err := g.GenerateQuiz(context.Background(), testDocument())
	require.NoError(t, err)
	assert.Equal(t, []string{"Topic A"}, generated.RelatedTopics)
}

func TestGenerateQuiz_ProseResponse(t *testing.T) {
	model := &fakeModel{response: "I'm sorry, I cannot produce a quiz for this article."}

	g, err := NewGeminiQuizGenerator(model, testConfig(), zap.NewNop())
	require.NoError(t, err)

	generated, err := g.GenerateQuiz(context.Background(), testDocument())
	assert.Nil(t, generated)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeGenerationParseError, domainErr.Code)
	// Raw text preserved for diagnostics
	assert.Equal(t, model.response, domainErr.Context["raw_response"])
}

func TestGenerateQuiz_LLMError(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}

	g, err := NewGeminiQuizGenerator(model, testConfig(), zap.NewNop())
	require.NoError(t, err)

	generated, err := g.GenerateQuiz(context.Background(), testDocument())
	assert.Nil(t, generated)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeGenerationError, domainErr.Code)
}

func TestGenerateQuiz_MalformedQuestionsPassThrough(t *testing.T) {
	// Three options, answer not among them, unknown difficulty: all kept as-is
	model := &fakeModel{response: `{
		"quiz": [
			{
				"question": "Pick one",
				"options": ["A", "B", "C"],
				"answer": "D",
				"difficulty": "impossible",
				"explanation": ""
			}
		]
	}`}

	g, err := NewGeminiQuizGenerator(model, testConfig(), zap.NewNop())
	require.NoError(t, err)

	generated, err := g.GenerateQuiz(context.Background(), testDocument())
	require.NoError(t, err)

	require.Len(t, generated.Questions, 1)
	q := generated.Questions[0]
	assert.Len(t, q.Options, 3)
	assert.Equal(t, "D", q.Answer)
	assert.Equal(t, "impossible", q.Difficulty)
}
