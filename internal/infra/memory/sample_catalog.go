package memory

import "matchminded-service/internal/domain"

// DefaultCatalogName is the name the sample catalog is registered under.
const DefaultCatalogName = "default"

var likertOptions = []string{"never", "rarely", "sometimes", "usually", "always"}

// SampleCatalog provides the reference question set and candidate profiles.
func SampleCatalog() domain.Catalog {
	return domain.Catalog{
		Name: DefaultCatalogName,
		Questions: []domain.Question{
			{ID: "q1", Prompt: "my ideal mate loves a good party", Options: likert()},
			{ID: "q2", Prompt: "my ideal mate enjoys going to museums and cultural events", Options: likert()},
			{ID: "q3", Prompt: "my ideal mate likes to talk about feelings and emotions", Options: likert()},
			{ID: "q4", Prompt: "my ideal mate is very logical and analytical", Options: likert()},
			{ID: "q5", Prompt: "my ideal mate likes to keep to a strict schedule", Options: likert()},
		},
		Candidates: []domain.Candidate{
			{ID: "abc123", Name: "zoë", TypeCode: "infj", BaselineAnswers: []int{4, 5, 2, 3, 4}, Location: "18 miles away"},
			{ID: "xyz789", Name: "mia", TypeCode: "enfj", BaselineAnswers: []int{3, 3, 4, 4, 2}, Location: "12 miles away"},
			{ID: "def456", Name: "hannah", TypeCode: "intj", BaselineAnswers: []int{1, 2, 5, 3, 1}, Location: "9 miles away"},
			{ID: "ghi321", Name: "chloe", TypeCode: "isfp", BaselineAnswers: []int{5, 4, 1, 2, 5}, Location: "22 miles away"},
		},
	}
}

// SampleCatalogs returns the sample catalog keyed by name, ready for NewStaticCatalogLoader.
func SampleCatalogs() map[string]domain.Catalog {
	return map[string]domain.Catalog{DefaultCatalogName: SampleCatalog()}
}

func likert() []string {
	return append([]string(nil), likertOptions...)
}
