package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/noah-isme/careplan-api/internal/models"
)

// PlanSource yields the full working set of plans.
type PlanSource interface {
	List(ctx context.Context) ([]models.Plan, error)
}

// FileSource reads a JSON array of plans, as returned by GET /plans data.
type FileSource struct {
	path string
}

// NewFileSource returns a source over the JSON file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// List decodes every plan in the file.
func (s *FileSource) List(_ context.Context) ([]models.Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var plans []models.Plan
	if err := json.Unmarshal(raw, &plans); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	return plans, nil
}
