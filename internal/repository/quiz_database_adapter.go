package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/repository/models"
	"wikiquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

const quizColumns = `id, url, title, summary, key_entities, sections, created_at, updated_at`

// GetQuizByURL implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE url = ?`
	err := exec.GetContext(ctx, &modelQuiz, query, url)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by URL %s: %w", url, err)
	}

	return a.loadQuizChildren(ctx, exec, &modelQuiz)
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = ?`
	err := exec.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	return a.loadQuizChildren(ctx, exec, &modelQuiz)
}

// GetAllQuizzes implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetAllQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuizzes []models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY created_at DESC`
	if err := exec.SelectContext(ctx, &modelQuizzes, query); err != nil {
		return nil, fmt.Errorf("failed to get all quizzes: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quiz, err := a.loadQuizChildren(ctx, exec, &modelQuizzes[i])
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

// SaveQuiz implements domain.QuizRepository. It inserts the quiz row and all
// child rows; the caller is expected to wrap it in a transaction together
// with any preceding delete.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	exec := GetExecutor(ctx, a.db)

	modelQuiz := toModelQuiz(quiz)
	modelQuiz.ID = util.NewULID()
	modelQuiz.CreatedAt = time.Now()
	modelQuiz.UpdatedAt = modelQuiz.CreatedAt

	query := `INSERT INTO quizzes (
		id, url, title, summary, key_entities, sections, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := exec.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.URL,
		modelQuiz.Title,
		modelQuiz.Summary,
		modelQuiz.KeyEntities,
		modelQuiz.Sections,
		modelQuiz.CreatedAt,
		modelQuiz.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(quiz.URL, err)
		}
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	questionQuery := `INSERT INTO questions (
		id, quiz_id, position, question_text, options, answer, difficulty, explanation, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		q.ID = util.NewULID()
		q.QuizID = modelQuiz.ID
		q.CreatedAt = modelQuiz.CreatedAt

		_, err := exec.ExecContext(ctx, questionQuery,
			q.ID,
			q.QuizID,
			i,
			q.QuestionText,
			models.StringSlice(q.Options),
			q.Answer,
			q.Difficulty,
			q.Explanation,
			q.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d: %w", i, err)
		}
	}

	topicQuery := `INSERT INTO related_topics (
		id, quiz_id, position, topic_name
	) VALUES (?, ?, ?, ?)`

	for i, topic := range quiz.RelatedTopics {
		_, err := exec.ExecContext(ctx, topicQuery, util.NewULID(), modelQuiz.ID, i, topic)
		if err != nil {
			return fmt.Errorf("failed to save related topic %d: %w", i, err)
		}
	}

	quiz.ID = modelQuiz.ID
	quiz.CreatedAt = modelQuiz.CreatedAt
	quiz.UpdatedAt = modelQuiz.UpdatedAt
	return nil
}

// DeleteQuizByURL implements domain.QuizRepository. Children go first so the
// delete also works when foreign keys are enforced without cascades.
func (a *QuizDatabaseAdapter) DeleteQuizByURL(ctx context.Context, url string) error {
	exec := GetExecutor(ctx, a.db)

	var quizID string
	err := exec.GetContext(ctx, &quizID, `SELECT id FROM quizzes WHERE url = ?`, url)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to look up quiz for deletion by URL %s: %w", url, err)
	}

	if _, err := exec.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, quizID); err != nil {
		return fmt.Errorf("failed to delete questions for quiz %s: %w", quizID, err)
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM related_topics WHERE quiz_id = ?`, quizID); err != nil {
		return fmt.Errorf("failed to delete related topics for quiz %s: %w", quizID, err)
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, quizID); err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", quizID, err)
	}
	return nil
}

// loadQuizChildren fetches questions and related topics for one quiz row and
// assembles the domain aggregate
func (a *QuizDatabaseAdapter) loadQuizChildren(ctx context.Context, exec DBTX, modelQuiz *models.Quiz) (*domain.Quiz, error) {
	var modelQuestions []models.Question
	questionQuery := `SELECT id, quiz_id, position, question_text, options, answer, difficulty, explanation, created_at
		FROM questions WHERE quiz_id = ? ORDER BY position ASC`
	if err := exec.SelectContext(ctx, &modelQuestions, questionQuery, modelQuiz.ID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", modelQuiz.ID, err)
	}

	var modelTopics []models.RelatedTopic
	topicQuery := `SELECT id, quiz_id, position, topic_name
		FROM related_topics WHERE quiz_id = ? ORDER BY position ASC`
	if err := exec.SelectContext(ctx, &modelTopics, topicQuery, modelQuiz.ID); err != nil {
		return nil, fmt.Errorf("failed to get related topics for quiz %s: %w", modelQuiz.ID, err)
	}

	return toDomainQuiz(modelQuiz, modelQuestions, modelTopics), nil
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// the SQLite driver
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func toModelQuiz(quiz *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:      quiz.ID,
		URL:     quiz.URL,
		Title:   quiz.Title,
		Summary: quiz.Summary,
		KeyEntities: models.EntityMap{
			People:        quiz.KeyEntities.People,
			Organizations: quiz.KeyEntities.Organizations,
			Locations:     quiz.KeyEntities.Locations,
		},
		Sections:  models.StringSlice(quiz.SectionTitles),
		CreatedAt: quiz.CreatedAt,
		UpdatedAt: quiz.UpdatedAt,
	}
}

func toDomainQuiz(modelQuiz *models.Quiz, modelQuestions []models.Question, modelTopics []models.RelatedTopic) *domain.Quiz {
	questions := make([]domain.Question, len(modelQuestions))
	for i, mq := range modelQuestions {
		questions[i] = domain.Question{
			ID:           mq.ID,
			QuizID:       mq.QuizID,
			QuestionText: mq.QuestionText,
			Options:      []string(mq.Options),
			Answer:       mq.Answer,
			Difficulty:   mq.Difficulty,
			Explanation:  mq.Explanation,
			CreatedAt:    mq.CreatedAt,
		}
	}

	topics := make([]string, len(modelTopics))
	for i, mt := range modelTopics {
		topics[i] = mt.TopicName
	}

	return &domain.Quiz{
		ID:      modelQuiz.ID,
		URL:     modelQuiz.URL,
		Title:   modelQuiz.Title,
		Summary: modelQuiz.Summary,
		KeyEntities: domain.KeyEntities{
			People:        modelQuiz.KeyEntities.People,
			Organizations: modelQuiz.KeyEntities.Organizations,
			Locations:     modelQuiz.KeyEntities.Locations,
		},
		SectionTitles: []string(modelQuiz.Sections),
		Questions:     questions,
		RelatedTopics: topics,
		CreatedAt:     modelQuiz.CreatedAt,
		UpdatedAt:     modelQuiz.UpdatedAt,
	}
}
