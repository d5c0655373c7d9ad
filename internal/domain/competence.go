package domain

import "context"

// Competence is a catalog entry managed out of band (seed data).
type Competence struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CompetenceRepository interface {
	List(ctx context.Context) ([]Competence, error)
	// CountByIDs returns how many of the given ids exist in the catalog.
	CountByIDs(ctx context.Context, ids []int64) (int, error)
}
