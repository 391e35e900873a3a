package domain

import "errors"

var (
	// ErrInvalidAnswerValue is returned when an answer falls outside the 1..5 Likert scale.
	ErrInvalidAnswerValue = errors.New("answer value must be between 1 and 5")
	// ErrInvalidPhase is returned when an answer is submitted while the quiz is not in progress.
	ErrInvalidPhase = errors.New("quiz is not accepting answers")
	// ErrAnswerCountMismatch signals a type code derivation over the wrong number of answers.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
	// ErrInvalidCatalog indicates the question or candidate data cannot drive a quiz.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrCatalogNotFound indicates the catalog could not be loaded.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrSessionNotFound is returned when a quiz session has not been started or was ended.
	ErrSessionNotFound = errors.New("quiz session not found")
)
