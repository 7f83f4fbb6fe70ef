package validation

import (
	"testing"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGenerateQuizRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		url      string
		wantCode domain.ErrorCode
	}{
		{"ValidHTTPS", "https://en.wikipedia.org/wiki/Ada_Lovelace", ""},
		{"ValidHTTP", "http://en.wikipedia.org/wiki/Go_(programming_language)", ""},
		{"Empty", "", domain.CodeMissingField},
		{"Whitespace", "   ", domain.CodeMissingField},
		{"RelativePath", "/wiki/Ada_Lovelace", domain.CodeInvalidFormat},
		{"BareWord", "ada lovelace", domain.CodeInvalidFormat},
		{"WrongScheme", "ftp://example.com/article", domain.CodeInvalidFormat},
		{"SchemeOnly", "https://", domain.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateGenerateQuizRequest(tt.url)
			if tt.wantCode == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantCode, errs[0].Code)
			assert.Equal(t, "url", errs[0].Field)
		})
	}
}

func TestValidateQuizID(t *testing.T) {
	v := NewValidator()

	t.Run("ValidULID", func(t *testing.T) {
		assert.Empty(t, v.ValidateQuizID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	})

	t.Run("Empty", func(t *testing.T) {
		errs := v.ValidateQuizID("")
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeMissingField, errs[0].Code)
	})

	t.Run("TooShort", func(t *testing.T) {
		errs := v.ValidateQuizID("01ARZ3")
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
	})

	t.Run("ExcludedCharacters", func(t *testing.T) {
		// I, L, O and U are not part of Crockford's Base32
		errs := v.ValidateQuizID("01ARZ3NDEKTSV4RRFFQ69G5FIL")
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
	})

	t.Run("Lowercase", func(t *testing.T) {
		errs := v.ValidateQuizID("01arz3ndektsv4rrffq69g5fav")
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
	})
}
