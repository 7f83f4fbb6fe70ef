package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wikiquiz/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appFailingWith(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func requestBoom(t *testing.T, app *fiber.App) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestErrorHandler_DomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *domain.DomainError
		wantStatus int
	}{
		{"FetchError", domain.NewFetchError("https://example.com", errors.New("dial tcp")), http.StatusBadRequest},
		{"ExtractionError", domain.NewExtractionError("missing title"), http.StatusUnprocessableEntity},
		{"GenerationError", domain.NewGenerationError(errors.New("quota")), http.StatusBadGateway},
		{"GenerationParseError", domain.NewGenerationParseError("not json", errors.New("bad json")), http.StatusBadGateway},
		{"QuizNotFound", domain.NewQuizNotFoundError("01X"), http.StatusNotFound},
		{"Conflict", domain.NewConflictError("https://example.com", errors.New("unique")), http.StatusConflict},
		{"Internal", domain.NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := requestBoom(t, appFailingWith(tt.err))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var got ErrorResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, string(tt.err.Code), got.Code)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	errs := domain.ValidationErrors{
		domain.NewMissingFieldError("url"),
	}
	resp, body := requestBoom(t, appFailingWith(errs))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, string(domain.CodeValidation), got.Code)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "url", got.Errors[0].Field)
}

func TestErrorHandler_RawResponseContextNotLeaked(t *testing.T) {
	err := domain.NewGenerationParseError("secret raw llm output", errors.New("bad json"))
	_, body := requestBoom(t, appFailingWith(err))
	assert.NotContains(t, string(body), "secret raw llm output")
}

func TestErrorHandler_FiberError(t *testing.T) {
	resp, body := requestBoom(t, appFailingWith(fiber.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "HTTP_ERROR", got.Code)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	resp, body := requestBoom(t, appFailingWith(errors.New("something unexpected")))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, string(domain.CodeInternal), got.Code)
	assert.Equal(t, "Internal server error", got.Message)
}
