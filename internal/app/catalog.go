package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"matchminded-service/internal/domain"
)

var validate = validator.New()

// ValidateCatalog checks that a catalog can drive a quiz: five labelled options per
// question, enough questions for the axis rules, and candidates whose baseline answers
// cover every question.
func ValidateCatalog(catalog domain.Catalog) error {
	if err := validate.Struct(catalog); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	n := len(catalog.Questions)
	if n < minQuestions {
		return fmt.Errorf("%w: need at least %d questions, got %d", domain.ErrInvalidCatalog, minQuestions, n)
	}
	for _, c := range catalog.Candidates {
		if len(c.BaselineAnswers) != n {
			return fmt.Errorf("%w: candidate %s has %d baseline answers, want %d", domain.ErrInvalidCatalog, c.ID, len(c.BaselineAnswers), n)
		}
	}
	return nil
}
