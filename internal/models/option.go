package models

import "time"

// OptionType names a controlled vocabulary.
type OptionType string

const (
	OptionTypeAxis      OptionType = "eixo"
	OptionTypeCareLine  OptionType = "linha_cuidado"
	OptionTypeSupporter OptionType = "apoiador"
	OptionTypeCategory  OptionType = "categoria"
)

// OptionTypes lists every vocabulary in display order.
var OptionTypes = []OptionType{
	OptionTypeAxis,
	OptionTypeCareLine,
	OptionTypeSupporter,
	OptionTypeCategory,
}

// Valid reports whether t is a known vocabulary.
func (t OptionType) Valid() bool {
	for _, known := range OptionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SetValued reports whether plans reference this vocabulary through an array column.
func (t OptionType) SetValued() bool {
	return t == OptionTypeSupporter || t == OptionTypeCategory
}

// PlanColumn returns the plans column that stores labels of this vocabulary.
func (t OptionType) PlanColumn() string {
	switch t {
	case OptionTypeAxis:
		return "eixo"
	case OptionTypeCareLine:
		return "linha_cuidado"
	case OptionTypeSupporter:
		return "apoiadores"
	case OptionTypeCategory:
		return "categorias"
	default:
		return ""
	}
}

// ConfigOption is a single label of a controlled vocabulary.
type ConfigOption struct {
	ID        string     `db:"id" json:"id"`
	Type      OptionType `db:"type" json:"type"`
	Label     string     `db:"label" json:"label"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
