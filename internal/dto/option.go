package dto

import "github.com/noah-isme/careplan-api/internal/models"

// AddOptionRequest registers a new label in a vocabulary.
type AddOptionRequest struct {
	Type  models.OptionType `json:"type" validate:"required"`
	Label string            `json:"label" validate:"required,max=120"`
}

// RenameOptionRequest carries the replacement label. Retry re-runs the plan
// rewrite of a rename whose option update already went through.
type RenameOptionRequest struct {
	Label string `json:"label" validate:"required,max=120"`
	Retry bool   `json:"retry"`
}

// OptionCatalog lists every vocabulary's labels, sorted.
type OptionCatalog struct {
	Axes                  []string `json:"eixo"`
	CareLines             []string `json:"linha_cuidado"`
	Supporters            []string `json:"apoiador"`
	Categories            []string `json:"categoria"`
	EvaluationFrequencies []string `json:"avaliacao"`
	Statuses              []string `json:"status"`
}

// CascadeFailure names a plan the rename could not rewrite.
type CascadeFailure struct {
	PlanID string `json:"plan_id"`
	Error  string `json:"error"`
}

// CascadeReport describes how a rename propagated to existing plans.
type CascadeReport struct {
	// ScalarRows counts plans rewritten by the single-column update.
	ScalarRows int64            `json:"scalar_rows"`
	Updated    []string         `json:"updated"`
	Failed     []CascadeFailure `json:"failed"`
}

// Complete reports whether every referencing plan was rewritten.
func (r CascadeReport) Complete() bool {
	return len(r.Failed) == 0
}

// RenameOptionResult is returned by a rename.
type RenameOptionResult struct {
	Type          models.OptionType `json:"type"`
	OldLabel      string            `json:"old_label"`
	NewLabel      string            `json:"new_label"`
	OptionRenamed bool              `json:"option_renamed"`
	Cascade       CascadeReport     `json:"cascade"`
}
