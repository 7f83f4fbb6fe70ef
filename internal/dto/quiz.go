package dto

import "wikiquiz/internal/domain"

// GenerateQuizRequest is the body of POST /generate-quiz
// @Description Request body for generating or fetching a quiz
type GenerateQuizRequest struct {
	URL          string `json:"url"`
	ForceRefresh bool   `json:"force_refresh"`
}

// QuestionResponse represents one question in the API response
type QuestionResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// KeyEntitiesResponse groups extracted entities by category
type KeyEntitiesResponse struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// QuizResponse represents a full stored quiz in the API response
// @Description Quiz information including questions and related topics
type QuizResponse struct {
	ID            string              `json:"id"`
	URL           string              `json:"url"`
	Title         string              `json:"title"`
	Summary       string              `json:"summary"`
	KeyEntities   KeyEntitiesResponse `json:"key_entities"`
	Sections      []string            `json:"sections"`
	Quiz          []QuestionResponse  `json:"quiz"`
	RelatedTopics []string            `json:"related_topics"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromDomainQuiz projects a domain quiz onto the response shape
func FromDomainQuiz(quiz *domain.Quiz) *QuizResponse {
	questions := make([]QuestionResponse, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = QuestionResponse{
			Question:    q.QuestionText,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  q.Difficulty,
			Explanation: q.Explanation,
		}
	}

	return &QuizResponse{
		ID:      quiz.ID,
		URL:     quiz.URL,
		Title:   quiz.Title,
		Summary: quiz.Summary,
		KeyEntities: KeyEntitiesResponse{
			People:        quiz.KeyEntities.People,
			Organizations: quiz.KeyEntities.Organizations,
			Locations:     quiz.KeyEntities.Locations,
		},
		Sections:      quiz.SectionTitles,
		Quiz:          questions,
		RelatedTopics: quiz.RelatedTopics,
	}
}
