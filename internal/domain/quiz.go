package domain

import "time"

// Difficulty labels the generator is asked to use. Unrecognized labels coming
// back from the LLM are stored as-is; see GeneratedQuiz.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// NormalizedDocument is the cleaned, structured view of one article page.
// It is produced by the content extractor and consumed by the quiz generator;
// it is never persisted on its own.
type NormalizedDocument struct {
	Title         string
	Summary       string
	BodyText      string
	SectionTitles []string
}

// KeyEntities groups named entities extracted by the LLM into the three fixed
// categories the prompt asks for. Absent categories stay as empty slices.
type KeyEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// Question is one multiple-choice question. The generator is asked for exactly
// 4 options with the answer among them, but that shape is not enforced here:
// malformed questions pass through and are persisted unchanged.
type Question struct {
	ID           string
	QuizID       string
	QuestionText string
	Options      []string
	Answer       string
	Difficulty   string
	Explanation  string
	CreatedAt    time.Time
}

// GeneratedQuiz is the typed projection of one LLM response. It lives only for
// the duration of a pipeline run before being persisted as a Quiz.
type GeneratedQuiz struct {
	KeyEntities   KeyEntities
	Questions     []Question
	RelatedTopics []string
}

// Quiz is the durable record for one article URL. At most one Quiz exists per
// URL at any time; a forced refresh replaces the whole record and its children
// rather than updating in place.
type Quiz struct {
	ID            string
	URL           string
	Title         string
	Summary       string
	KeyEntities   KeyEntities
	SectionTitles []string
	Questions     []Question
	RelatedTopics []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuiz assembles a durable quiz from one extraction and one generation.
// The ID is assigned by the repository on save.
func NewQuiz(url string, doc *NormalizedDocument, generated *GeneratedQuiz) *Quiz {
	now := time.Now()
	return &Quiz{
		URL:           url,
		Title:         doc.Title,
		Summary:       doc.Summary,
		KeyEntities:   generated.KeyEntities,
		SectionTitles: doc.SectionTitles,
		Questions:     generated.Questions,
		RelatedTopics: generated.RelatedTopics,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks the minimal structural requirements for persistence
func (q *Quiz) Validate() error {
	if q.URL == "" {
		return NewValidationError("url", "url is required")
	}
	if q.Title == "" {
		return NewValidationError("title", "title is required")
	}
	return nil
}

// NewValidationError builds a single-field ValidationErrors value
func NewValidationError(field, message string) error {
	return ValidationErrors{{Field: field, Code: CodeValidation, Message: message}}
}
