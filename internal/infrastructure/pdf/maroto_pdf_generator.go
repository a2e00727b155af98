// Package pdf implementa la generación del documento imprimible de una nota
// de devolución al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° Nota  │  Fecha + Estado                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Patrimônio | Modelo | Marca                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVAÇÕES                                                │
//	│  FIRMAS: Responsável pela entrega / Recebido por            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa returns.NotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateNotePDF genera el PDF de la nota y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateNotePDF(note *entity.ReturnNote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Devolução "+note.NumeroNota, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de items
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(note.Itens) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if note.Observacoes != "" {
		m.AddRows(observacoesRow(note.Observacoes))
	}
	m.AddRows(line.NewRow(8))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + número (izq) y fecha + estado (der).
func headerRow(note *entity.ReturnNote) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("NOTA DE DEVOLUÇÃO AO FORNECEDOR", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Nota N° "+note.NumeroNota, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Data: "+note.Data, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Status: "+note.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Criado por: "+note.CriadoPor, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Patrimônio", 3, align.Left),
		h("Modelo", 4, align.Left),
		h("Marca", 4, align.Left),
	)
}

// tableItemRows: una fila por línea de la nota.
func tableItemRows(itens []entity.ReturnNoteItem) []core.Row {
	result := make([]core.Row, 0, len(itens))
	for i, it := range itens {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				it.Patrimonio,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(it.Modelo, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(it.Marca, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// observacoesRow: bloque libre de observaciones.
func observacoesRow(obs string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("OBSERVAÇÕES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(obs, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// signatureRow: líneas de firma para entrega y recepción.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_________________________________", props.Text{
				Size: 9, Align: align.Center, Top: 2,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 8, Color: colorGray,
			}),
		)
	}
	return row.New(16).Add(
		sig("Responsável pela entrega"),
		sig("Recebido por (fornecedor)"),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
