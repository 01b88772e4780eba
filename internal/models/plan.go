package models

import (
	"time"

	"github.com/lib/pq"
)

// PlanStatus enumerates the lifecycle states of a plan.
type PlanStatus string

const (
	PlanStatusPlanned    PlanStatus = "PLANEJADO"
	PlanStatusInProgress PlanStatus = "EM ANDAMENTO"
	PlanStatusCompleted  PlanStatus = "CONCLUÍDO"
	PlanStatusSuspended  PlanStatus = "SUSPENSO"
)

// PlanStatuses lists every status in display order.
var PlanStatuses = []PlanStatus{
	PlanStatusPlanned,
	PlanStatusInProgress,
	PlanStatusCompleted,
	PlanStatusSuspended,
}

// Valid reports whether the status is one of the known values.
func (s PlanStatus) Valid() bool {
	for _, known := range PlanStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Well-known axis labels that change which optional fields apply.
const (
	AxisInnovation    = "INOVAÇÃO"
	AxisQualification = "QUALIFICAÇÃO"
	AxisWorkProcess   = "PROCESSO DE TRABALHO"
)

// EvaluationFrequencies is the fixed vocabulary for the evaluation cadence.
var EvaluationFrequencies = []string{
	"DIÁRIO",
	"SEMANAL",
	"QUINZENAL",
	"MENSAL",
	"BIMENSAL",
	"TRIMESTRAL",
	"SEMESTRAL",
	"ANUAL",
}

// Plan is a tracked care-improvement initiative.
type Plan struct {
	ID                  string         `db:"id" json:"id"`
	OwnerID             string         `db:"professional_id" json:"owner_id"`
	Axis                string         `db:"eixo" json:"axis"`
	CareLine            string         `db:"linha_cuidado" json:"care_line"`
	Status              PlanStatus     `db:"status" json:"status"`
	Supporters          pq.StringArray `db:"apoiadores" json:"supporters"`
	Categories          pq.StringArray `db:"categorias" json:"categories"`
	Summary             string         `db:"resumo" json:"summary"`
	Goal                string         `db:"meta" json:"goal"`
	EvaluationFrequency string         `db:"avaliacao" json:"evaluation_frequency"`
	Cycle               *string        `db:"ciclo" json:"cycle,omitempty"`
	StartDate           CalendarDate   `db:"data_inicial" json:"start_date"`
	EndDate             CalendarDate   `db:"data_final" json:"end_date"`
	Notes               *string        `db:"observacoes" json:"notes,omitempty"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
}

// HasSupporter reports whether label is among the plan's supporters.
func (p Plan) HasSupporter(label string) bool {
	return containsLabel(p.Supporters, label)
}

// HasCategory reports whether label is among the plan's categories.
func (p Plan) HasCategory(label string) bool {
	return containsLabel(p.Categories, label)
}

func containsLabel(values []string, label string) bool {
	for _, v := range values {
		if v == label {
			return true
		}
	}
	return false
}
