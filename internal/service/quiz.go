package service

import (
	"context"
	"errors"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
	"wikiquiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the core business operations for quizzes
type QuizService interface {
	// GenerateQuiz returns the stored quiz for url, generating a fresh one
	// on a cache miss or when forceRefresh is set
	GenerateQuiz(ctx context.Context, url string, forceRefresh bool) (*dto.QuizResponse, error)

	// GetQuizByID retrieves one stored quiz by its identity
	GetQuizByID(ctx context.Context, id string) (*dto.QuizResponse, error)

	// ListQuizzes returns all stored quizzes
	ListQuizzes(ctx context.Context) ([]*dto.QuizResponse, error)
}

// quizService implements QuizService. It is the pipeline orchestrator: it
// owns the cache-or-regenerate decision and composes fetcher, extractor,
// generator and repository. Data flows strictly downward; each stage failure
// aborts the request with its own error kind and nothing is retried.
type quizService struct {
	repo          domain.QuizRepository
	txManager     domain.TransactionManager
	fetcher       domain.ArticleFetcher
	extractor     domain.ContentExtractor
	generator     domain.QuizGenerationService
	responseCache QuizResponseCacheService
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	txManager domain.TransactionManager,
	fetcher domain.ArticleFetcher,
	extractor domain.ContentExtractor,
	generator domain.QuizGenerationService,
	responseCache QuizResponseCacheService,
) QuizService {
	return &quizService{
		repo:          repo,
		txManager:     txManager,
		fetcher:       fetcher,
		extractor:     extractor,
		generator:     generator,
		responseCache: responseCache,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, url string, forceRefresh bool) (*dto.QuizResponse, error) {
	log := logger.Get()

	if !forceRefresh {
		// Response cache first, then the durable store
		cached, err := s.responseCache.Get(ctx, url)
		if err != nil {
			log.Warn("QuizService: response cache read failed, falling through to repository",
				zap.Error(err), zap.String("url", url))
		} else if cached != nil {
			log.Info("QuizService: response cache hit", zap.String("url", url))
			return cached, nil
		}

		existing, err := s.repo.GetQuizByURL(ctx, url)
		if err != nil {
			return nil, domain.NewInternalError("Failed to look up quiz by URL", err)
		}
		if existing != nil {
			log.Info("QuizService: durable cache hit", zap.String("url", url), zap.String("quiz_id", existing.ID))
			response := dto.FromDomainQuiz(existing)
			s.populateResponseCache(ctx, url, response)
			return response, nil
		}
	}

	// Miss or forced refresh: run the full pipeline
	log.Info("QuizService: running generation pipeline",
		zap.String("url", url), zap.Bool("force_refresh", forceRefresh))

	rawMarkup, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	document, err := s.extractor.Extract(rawMarkup)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateQuiz(ctx, document)
	if err != nil {
		return nil, err
	}

	quiz := domain.NewQuiz(url, document, generated)
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	// Replace-on-refresh: delete and insert commit as one unit so a
	// concurrent reader never sees zero or two quizzes for the URL. The
	// unique index on url backstops concurrent refreshes; the loser's
	// transaction fails with a conflict instead of creating a duplicate.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteQuizByURL(txCtx, url); err != nil {
			return err
		}
		return s.repo.SaveQuiz(txCtx, quiz)
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("Failed to store generated quiz", err)
	}

	response := dto.FromDomainQuiz(quiz)
	s.populateResponseCache(ctx, url, response)
	return response, nil
}

// GetQuizByID implements QuizService
func (s *quizService) GetQuizByID(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return dto.FromDomainQuiz(quiz), nil
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context) ([]*dto.QuizResponse, error) {
	quizzes, err := s.repo.GetAllQuizzes(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	responses := make([]*dto.QuizResponse, len(quizzes))
	for i, quiz := range quizzes {
		responses[i] = dto.FromDomainQuiz(quiz)
	}
	return responses, nil
}

// populateResponseCache writes through to the response cache, logging but
// never surfacing cache failures
func (s *quizService) populateResponseCache(ctx context.Context, url string, response *dto.QuizResponse) {
	if err := s.responseCache.Put(ctx, url, response); err != nil {
		logger.Get().Warn("QuizService: failed to populate response cache",
			zap.Error(err), zap.String("url", url))
	}
}
