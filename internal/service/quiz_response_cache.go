package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wikiquiz/internal/cache"
	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
	"wikiquiz/internal/logger"

	"go.uber.org/zap"
)

// QuizResponseCacheService caches fully-assembled quiz responses keyed by
// article URL, in front of the durable store. A miss or any cache failure
// falls back to the repository path; the cache never decides correctness.
type QuizResponseCacheService interface {
	// Get returns the cached response for url, or nil on a miss.
	Get(ctx context.Context, url string) (*dto.QuizResponse, error)

	// Put stores the response for url, overwriting any previous entry.
	Put(ctx context.Context, url string, response *dto.QuizResponse) error

	// Invalidate drops the entry for url. Missing entries are not an error.
	Invalidate(ctx context.Context, url string) error
}

type quizResponseCacheService struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewQuizResponseCacheService creates a response cache backed by the given
// cache port. A nil cache yields a no-op implementation so callers need no
// nil checks.
func NewQuizResponseCacheService(c domain.Cache, ttl time.Duration) QuizResponseCacheService {
	if c == nil {
		logger.Get().Warn("QuizResponseCacheService initialized with nil cache. Service will be no-op.")
		return &noopQuizResponseCacheService{}
	}
	return &quizResponseCacheService{cache: c, ttl: ttl}
}

func (s *quizResponseCacheService) generateKey(url string) string {
	return cache.GenerateCacheKey("quiz", "url", cache.HashURL(url))
}

func (s *quizResponseCacheService) Get(ctx context.Context, url string) (*dto.QuizResponse, error) {
	key := s.generateKey(url)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	var response dto.QuizResponse
	if err := json.Unmarshal([]byte(data), &response); err != nil {
		// A corrupt entry behaves like a miss; the durable store rebuilds it
		logger.Get().Warn("Failed to unmarshal cached quiz response, treating as miss",
			zap.Error(err), zap.String("key", key))
		return nil, nil
	}
	return &response, nil
}

func (s *quizResponseCacheService) Put(ctx context.Context, url string, response *dto.QuizResponse) error {
	if response == nil {
		return domain.NewInvalidInputError("cannot cache nil response")
	}

	dataBytes, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.generateKey(url), string(dataBytes), s.ttl)
}

func (s *quizResponseCacheService) Invalidate(ctx context.Context, url string) error {
	return s.cache.Delete(ctx, s.generateKey(url))
}

// noopQuizResponseCacheService satisfies the interface when no cache is wired
type noopQuizResponseCacheService struct{}

func (s *noopQuizResponseCacheService) Get(ctx context.Context, url string) (*dto.QuizResponse, error) {
	return nil, nil
}

func (s *noopQuizResponseCacheService) Put(ctx context.Context, url string, response *dto.QuizResponse) error {
	return nil
}

func (s *noopQuizResponseCacheService) Invalidate(ctx context.Context, url string) error {
	return nil
}
