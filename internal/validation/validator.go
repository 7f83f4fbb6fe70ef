package validation

import (
	"net/url"
	"regexp"
	"strings"

	"wikiquiz/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the generate-quiz request body
func (v *Validator) ValidateGenerateQuizRequest(rawURL string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(rawURL) == "" {
		errs = append(errs, domain.NewMissingFieldError("url"))
	} else if !isValidArticleURL(rawURL) {
		errs = append(errs, domain.NewInvalidFormatError("url", rawURL))
	}

	return errs
}

// ValidateQuizID validates a quiz identity path parameter
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errs = append(errs, domain.NewInvalidFormatError("id", id))
	}

	return errs
}

// isValidArticleURL checks that the string parses as an absolute http(s) URL
func isValidArticleURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	// Crockford's Base32
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
