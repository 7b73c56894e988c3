// Package pdf genera el reporte mensual de transacciones de la consola.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + periodo (mes/año)                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Fecha | Tipo | Unidades | Total | Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: N transacciones / suma de importes                │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// monthNames nombres de mes para el encabezado del periodo.
var monthNames = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo",
	"Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// TransactionReportGenerator genera el PDF del reporte de transacciones con Maroto v2.
type TransactionReportGenerator struct{}

// NewTransactionReportGenerator construye el generador.
func NewTransactionReportGenerator() *TransactionReportGenerator {
	return &TransactionReportGenerator{}
}

// Generate genera el reporte del periodo y devuelve sus bytes.
func (g *TransactionReportGenerator) Generate(month, year int, transactions []entity.Transaction) ([]byte, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("pdf: mes inválido %d", month)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de transacciones", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(month, year))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(transactions) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(transactions))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y periodo (der).
func headerRow(month, year int) core.Row {
	period := fmt.Sprintf("%s %d", monthNames[month], year)
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE TRANSACCIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de transacciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Fecha", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Unidades", 2, align.Right),
		h("Total", 2, align.Right),
		h("Estado", 2, align.Left),
	)
}

// tableRows: una fila por transacción.
func tableRows(transactions []entity.Transaction) []core.Row {
	result := make([]core.Row, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", tx.ID),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(tx.CreatedAt, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				transactionTypeLabel(tx.TransactionType),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", tx.TotalProducts),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(tx.TotalPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(tx.Status, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(transactions []entity.Transaction) core.Row {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.TotalPrice)
	}

	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Transacciones:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", len(transactions)), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New("$"+formatMoney(total.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

func transactionTypeLabel(t string) string {
	switch t {
	case entity.TransactionPurchase:
		return "Compra"
	case entity.TransactionSale:
		return "Venta"
	case entity.TransactionReturn:
		return "Devolución"
	default:
		return nonEmpty(t, "—")
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
