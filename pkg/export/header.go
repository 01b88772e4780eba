package export

import (
	"fmt"
	"time"
)

// Header describes the preamble printed above an exported table.
type Header struct {
	Title       string
	Filter      string
	GeneratedAt time.Time
	Total       int
}

// Lines returns the preamble rows below the title.
func (h Header) Lines() []string {
	lines := make([]string, 0, 3)
	if h.Filter != "" {
		lines = append(lines, "Filtros: "+h.Filter)
	}
	if !h.GeneratedAt.IsZero() {
		lines = append(lines, "Gerado em: "+h.GeneratedAt.Format("02/01/2006 15:04"))
	}
	lines = append(lines, fmt.Sprintf("Total de registros: %d", h.Total))
	return lines
}
