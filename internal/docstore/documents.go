// Package docstore maps catalogs to and from the document shape used by the
// persistence collaborator: a collection, a document id and a field map.
package docstore

import (
	"encoding/json"
	"fmt"

	"matchminded-service/internal/domain"
)

// Document is a stored document with its fields still JSON encoded.
type Document struct {
	Collection string
	ID         string
	Fields     []byte
}

// Requests turns a catalog into write requests: questions first, then users. Each request
// carries its list index as Position so the order survives concurrent writes.
func Requests(catalog domain.Catalog) []domain.WriteRequest {
	reqs := make([]domain.WriteRequest, 0, len(catalog.Questions)+len(catalog.Candidates))
	for i, q := range catalog.Questions {
		reqs = append(reqs, domain.WriteRequest{
			Collection: domain.CollectionQuestions,
			DocumentID: q.ID,
			Position:   i,
			Fields: map[string]any{
				"prompt":  q.Prompt,
				"options": q.Options,
			},
		})
	}
	for i, c := range catalog.Candidates {
		reqs = append(reqs, domain.WriteRequest{
			Collection: domain.CollectionUsers,
			DocumentID: c.ID,
			Position:   i,
			Fields: map[string]any{
				"name":     c.Name,
				"typeCode": c.TypeCode,
				"answers":  c.BaselineAnswers,
				"location": c.Location,
			},
		})
	}
	return reqs
}

// DecodeCatalog rebuilds a catalog from documents given in position order.
// Documents from unknown collections are skipped.
func DecodeCatalog(name string, docs []Document) (domain.Catalog, error) {
	catalog := domain.Catalog{Name: name}
	for _, doc := range docs {
		switch doc.Collection {
		case domain.CollectionQuestions:
			var q domain.Question
			if err := json.Unmarshal(doc.Fields, &q); err != nil {
				return domain.Catalog{}, fmt.Errorf("decode question %s: %w", doc.ID, err)
			}
			q.ID = doc.ID
			catalog.Questions = append(catalog.Questions, q)
		case domain.CollectionUsers:
			var c domain.Candidate
			if err := json.Unmarshal(doc.Fields, &c); err != nil {
				return domain.Catalog{}, fmt.Errorf("decode user %s: %w", doc.ID, err)
			}
			c.ID = doc.ID
			catalog.Candidates = append(catalog.Candidates, c)
		}
	}
	if len(catalog.Questions) == 0 && len(catalog.Candidates) == 0 {
		return domain.Catalog{}, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, name)
	}
	return catalog, nil
}
