package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matchminded-service/internal/domain"
)

func TestValidateCatalog(t *testing.T) {
	assert.NoError(t, ValidateCatalog(fixtureCatalog()))

	cases := map[string]func(c *domain.Catalog){
		"no candidates":      func(c *domain.Catalog) { c.Candidates = nil },
		"no questions":       func(c *domain.Catalog) { c.Questions = nil },
		"four options":       func(c *domain.Catalog) { c.Questions[0].Options = c.Questions[0].Options[:4] },
		"blank option":       func(c *domain.Catalog) { c.Questions[1].Options = []string{"a", "", "c", "d", "e"} },
		"too few questions":  func(c *domain.Catalog) { c.Questions = c.Questions[:4] },
		"baseline too short": func(c *domain.Catalog) { c.Candidates[0].BaselineAnswers = []int{1, 2, 3} },
		"baseline off scale": func(c *domain.Catalog) { c.Candidates[1].BaselineAnswers = []int{1, 2, 3, 4, 9} },
		"bad type code":      func(c *domain.Catalog) { c.Candidates[2].TypeCode = "IN1" },
		"missing name":       func(c *domain.Catalog) { c.Candidates[0].Name = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			catalog := fixtureCatalog()
			mutate(&catalog)
			assert.ErrorIs(t, ValidateCatalog(catalog), domain.ErrInvalidCatalog)
		})
	}
}

// fixtureCatalog mirrors the reference sample data.
func fixtureCatalog() domain.Catalog {
	questions := make([]domain.Question, 0, 5)
	for i, prompt := range []string{"parties", "museums", "feelings", "logic", "schedule"} {
		questions = append(questions, domain.Question{
			ID:      "q" + string(rune('1'+i)),
			Prompt:  prompt,
			Options: []string{"never", "rarely", "sometimes", "usually", "always"},
		})
	}
	return domain.Catalog{
		Name:      "fixture",
		Questions: questions,
		Candidates: []domain.Candidate{
			{ID: "abc123", Name: "zoë", TypeCode: "infj", BaselineAnswers: []int{4, 5, 2, 3, 4}, Location: "18 miles away"},
			{ID: "xyz789", Name: "mia", TypeCode: "enfj", BaselineAnswers: []int{3, 3, 4, 4, 2}, Location: "12 miles away"},
			{ID: "def456", Name: "hannah", TypeCode: "intj", BaselineAnswers: []int{1, 2, 5, 3, 1}, Location: "9 miles away"},
			{ID: "ghi321", Name: "chloe", TypeCode: "isfp", BaselineAnswers: []int{5, 4, 1, 2, 5}, Location: "22 miles away"},
		},
	}
}
