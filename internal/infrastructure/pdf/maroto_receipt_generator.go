// Package pdf genera el recibo de venta en PDF con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  HEADER: Recibo de venta + referencia     │
//	│  Cliente / Fecha / Método de pago         │
//	│  ───────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total  │
//	│  ───────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL          │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
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

	appsales "github.com/tu-usuario/gestion-pyme/internal/application/sales"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(_ context.Context, data *appsales.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta "+data.Reference, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, l := range data.Lines {
		m.AddRows(lineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y referencia + fecha (der).
func headerRow(data *appsales.ReceiptData) core.Row {
	title := "Recibo de venta"
	if data.Returned {
		title = "Recibo de venta (DEVUELTA)"
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(data.Reference, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(data.Date, props.Text{
				Size: 9, Top: 7, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// infoRow: cliente y método de pago.
func infoRow(data *appsales.ReceiptData) core.Row {
	return row.New(8).Add(
		col.New(7).Add(
			text.New("Cliente: "+data.ClientName, props.Text{Size: 9, Top: 1}),
		),
		col.New(5).Add(
			text.New("Pago: "+data.PaymentMethod, props.Text{Size: 9, Top: 1, Align: align.Right}),
		),
	)
}

func tableHeaderRow() core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	boldRight := bold
	boldRight.Align = align.Right
	return row.New(7).Add(
		col.New(2).Add(text.New("Cant", bold)),
		col.New(5).Add(text.New("Producto", bold)),
		col.New(2).Add(text.New("P.Unit", boldRight)),
		col.New(3).Add(text.New("Total", boldRight)),
	)
}

func lineRow(l appsales.ReceiptLine) core.Row {
	normal := props.Text{Size: 9, Top: 1}
	right := normal
	right.Align = align.Right
	return row.New(6).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), normal)),
		col.New(5).Add(text.New(l.ProductName, normal)),
		col.New(2).Add(text.New(l.UnitPrice.StringFixed(2), right)),
		col.New(3).Add(text.New(l.Total.StringFixed(2), right)),
	)
}

func totalsRows(data *appsales.ReceiptData) []core.Row {
	label := props.Text{Size: 9, Top: 1, Align: align.Right, Color: colorGray}
	value := props.Text{Size: 9, Top: 1, Align: align.Right}
	totalLabel := props.Text{Style: fontstyle.Bold, Size: 11, Top: 1, Align: align.Right, Color: colorPrimary}
	return []core.Row{
		row.New(6).Add(
			col.New(9).Add(text.New("Subtotal", label)),
			col.New(3).Add(text.New(data.Subtotal.StringFixed(2), value)),
		),
		row.New(6).Add(
			col.New(9).Add(text.New("IVA", label)),
			col.New(3).Add(text.New(data.VAT.StringFixed(2), value)),
		),
		row.New(8).Add(
			col.New(9).Add(text.New("TOTAL", totalLabel)),
			col.New(3).Add(text.New(data.Total.StringFixed(2), totalLabel)),
		),
	}
}
