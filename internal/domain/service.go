package domain

import "context"

// ArticleFetcher retrieves raw article markup for a URL. Any transport or
// status failure is fatal for the request that triggered the fetch.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ContentExtractor parses raw article markup into a NormalizedDocument.
// It fails when the title or body landmark is structurally absent.
type ContentExtractor interface {
	Extract(rawMarkup []byte) (*NormalizedDocument, error)
}

// QuizGenerationService invokes the external generation capability with a
// single prompt built from the document and parses its free-text response
// into a typed GeneratedQuiz. No streaming, no multi-turn state.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, doc *NormalizedDocument) (*GeneratedQuiz, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// GetQuizByURL returns the unique quiz for a URL, or nil when none exists
	GetQuizByURL(ctx context.Context, url string) (*Quiz, error)

	// GetQuizByID retrieves a quiz by its ID, or nil when none exists
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// GetAllQuizzes returns all stored quizzes with their children
	GetAllQuizzes(ctx context.Context) ([]*Quiz, error)

	// SaveQuiz persists a new quiz together with its questions and related
	// topics. It assigns IDs to the quiz and its children.
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// DeleteQuizByURL removes the quiz for a URL and all of its children.
	// Deleting a URL with no quiz is a no-op.
	DeleteQuizByURL(ctx context.Context, url string) error
}

// TransactionManager runs a function within a single database transaction.
// The replace-on-refresh protocol depends on this: delete and insert for one
// URL must commit or roll back as a unit.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
