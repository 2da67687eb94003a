// Package pdf renders invoices as PDF documents. The renderer performs
// no arithmetic: all monetary values arrive preformatted, computed by
// the caller.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Party identifies one side of the invoice
type Party struct {
	Name    string
	Email   string
	Address string
}

// Item is a single rendered line of the item table
type Item struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

// InvoiceData carries everything the document shows
type InvoiceData struct {
	Number  string
	Date    string
	DueDate string
	Company Party
	Client  Party
	Items   []Item

	VATRate     string
	Subtotal    string
	VATAmount   string
	TotalAmount string
}

// InvoiceDocument renders the invoice into PDF bytes
func InvoiceDocument(data InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "INVOICE "+data.Number, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(4, data.Company.Name, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(8, "Date: "+data.Date, props.Text{Size: 9}),
		text.NewCol(4, data.Company.Email, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(8, "Due date: "+data.DueDate, props.Text{Size: 9}),
		text.NewCol(4, data.Company.Address, props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(8, text.NewCol(12, "Bill to", props.Text{Size: 9, Style: fontstyle.Bold, Top: 3}))
	m.AddRow(5, text.NewCol(12, data.Client.Name, props.Text{Size: 9}))
	m.AddRow(5, text.NewCol(12, data.Client.Email, props.Text{Size: 9}))

	m.AddRows(line.NewRow(4))

	m.AddRow(7,
		text.NewCol(6, "Description", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRows(itemRow(item))
	}

	m.AddRows(line.NewRow(4))

	m.AddRow(6,
		text.NewCol(10, "Subtotal", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(10, fmt.Sprintf("VAT (%s%%)", data.VATRate), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, data.VATAmount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(10, "Total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, data.TotalAmount, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice document: %w", err)
	}
	return doc.GetBytes(), nil
}

func itemRow(item Item) core.Row {
	return row.New(6).Add(
		text.NewCol(6, item.Description, props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, item.Total, props.Text{Size: 9, Align: align.Right}),
	)
}
