package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	data := Dataset{Headers: []string{"Eixo", "Linha de Cuidado", "Status"}}
	data.Append("INOVAÇÃO", "SAÚDE MENTAL", "EM ANDAMENTO")
	data.Append("QUALIFICAÇÃO", "SAÚDE DA MULHER", "CONCLUÍDO")
	return data
}

func sampleHeader() Header {
	return Header{
		Title:       "Histórico de planos",
		Filter:      "Status: EM ANDAMENTO",
		GeneratedAt: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Total:       2,
	}
}

func TestHeaderLines(t *testing.T) {
	assert.Equal(t, []string{
		"Filtros: Status: EM ANDAMENTO",
		"Gerado em: 05/03/2024 14:30",
		"Total de registros: 2",
	}, sampleHeader().Lines())
	assert.Equal(t, []string{"Total de registros: 0"}, Header{}.Lines())
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	text := strings.TrimPrefix(string(out), "\ufeff")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Eixo,Linha de Cuidado,Status", lines[0])
	assert.Equal(t, "INOVAÇÃO,SAÚDE MENTAL,EM ANDAMENTO", lines[1])

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterOrientations(t *testing.T) {
	for _, o := range []Orientation{Portrait, Landscape} {
		out, err := NewPDFExporter(o).Render(sampleDataset(), sampleHeader())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	}
	_, err := NewPDFExporter(Portrait).Render(Dataset{}, Header{})
	assert.Error(t, err)
}

func TestParseOrientation(t *testing.T) {
	assert.Equal(t, Landscape, ParseOrientation("landscape"))
	assert.Equal(t, Landscape, ParseOrientation(" L "))
	assert.Equal(t, Portrait, ParseOrientation(""))
	assert.Equal(t, Portrait, ParseOrientation("sideways"))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), sampleHeader())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())
	title, err := f.GetCellValue(xlsxSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Histórico de planos", title)

	// title, three preamble lines, blank row, then the table header on row 6
	head, err := f.GetCellValue(xlsxSheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "Linha de Cuidado", head)
	status, err := f.GetCellValue(xlsxSheet, "C8")
	require.NoError(t, err)
	assert.Equal(t, "CONCLUÍDO", status)
}
