package pdf

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoiceData carries everything the invoice document needs, pre-joined
// by the caller. Dates arrive already formatted.
type InvoiceData struct {
	InvoiceNumber string
	Date          string
	ServiceDate   string
	Status        string
	Description   string
	Hours         float64
	Rate          float64
	Total         float64
	Notes         string
	Paid          bool

	Client  ClientData
	Company CompanyData
}

type ClientData struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

type CompanyData struct {
	Name    string
	Owner   string
	Address string
	Phone   string
	Email   string
}

var (
	brandBlue = props.Color{Red: 0, Green: 102, Blue: 204}
	gray      = props.Color{Red: 128, Green: 128, Blue: 128}
)

// InvoicePDF renders the invoice document and returns the PDF bytes.
// Paid invoices are stamped with the PAID overlay on every page.
func InvoicePDF(data InvoiceData) ([]byte, error) {
	doc, err := layout(data).Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	out := doc.GetBytes()
	if data.Paid {
		if out, err = StampPaid(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func layout(data InvoiceData) core.Maroto {
	// Letter with half-inch margins, like the invoices have always looked.
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12.7).
		WithTopMargin(12.7).
		WithRightMargin(12.7).
		WithBottomMargin(12.7).
		WithDefaultFont(&props.Font{Family: fontfamily.Helvetica}).
		Build()
	m := maroto.New(cfg)

	label := props.Text{Size: 10, Color: &brandBlue}
	value := props.Text{Size: 10}
	heading := props.Text{Size: 12, Style: fontstyle.Bold, Color: &brandBlue}
	info := props.Text{Size: 10}

	// Company header with the invoice title on the right.
	m.AddRow(12,
		text.NewCol(8, data.Company.Name, props.Text{Size: 22, Style: fontstyle.Bold, Color: &brandBlue}),
		text.NewCol(4, "INVOICE", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right, Color: &brandBlue}),
	)
	m.AddRow(5,
		text.NewCol(8, data.Company.Owner, info),
		text.NewCol(4, data.InvoiceNumber, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(5, text.NewCol(12, data.Company.Address, info))
	m.AddRow(5, text.NewCol(12, data.Company.Phone, info))
	m.AddRow(5, text.NewCol(12, data.Company.Email, info))
	m.AddRow(6, col.New(12))

	// Invoice metadata.
	m.AddRow(6,
		text.NewCol(2, "Invoice #:", label),
		text.NewCol(4, data.InvoiceNumber, value),
		text.NewCol(2, "Date:", label),
		text.NewCol(4, data.Date, value),
	)
	m.AddRow(6,
		text.NewCol(2, "Service Date:", label),
		text.NewCol(4, data.ServiceDate, value),
		text.NewCol(2, "Status:", label),
		text.NewCol(4, strings.ToUpper(data.Status), value),
	)
	m.AddRow(6, col.New(12))

	// Bill to block; empty client fields are skipped.
	m.AddRow(8, text.NewCol(12, "Bill To:", heading))
	for _, ln := range []string{data.Client.Name, data.Client.Address, data.Client.Email, data.Client.Phone} {
		if ln == "" {
			continue
		}
		m.AddRow(5, text.NewCol(12, ln, info))
	}
	m.AddRow(6, col.New(12))

	// Line items.
	head := props.Text{Size: 10, Style: fontstyle.Bold, Color: &brandBlue}
	headRight := props.Text{Size: 10, Style: fontstyle.Bold, Color: &brandBlue, Align: align.Right}
	cell := props.Text{Size: 10}
	cellRight := props.Text{Size: 10, Align: align.Right}
	m.AddRow(7,
		text.NewCol(6, "Description", head),
		text.NewCol(2, "Hours", headRight),
		text.NewCol(2, "Rate", headRight),
		text.NewCol(2, "Amount", headRight),
	)
	m.AddRow(2, line.NewCol(12, props.Line{Color: &brandBlue, Thickness: 0.5, SizePercent: 100}))
	m.AddRow(7,
		text.NewCol(6, truncate(data.Description, 40), cell),
		text.NewCol(2, fmt.Sprintf("%.2f", data.Hours), cellRight),
		text.NewCol(2, fmt.Sprintf("$%.2f/hr", data.Rate), cellRight),
		text.NewCol(2, fmt.Sprintf("$%.2f", data.Total), cellRight),
	)
	if data.Notes != "" {
		m.AddRow(6, text.NewCol(12, "Note: "+data.Notes, props.Text{Size: 9, Style: fontstyle.Italic, Color: &gray}))
	}
	m.AddRow(4, col.New(12))

	// Totals.
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Subtotal:", cellRight),
		text.NewCol(2, fmt.Sprintf("$%.2f", data.Total), cellRight),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Tax (0%):", cellRight),
		text.NewCol(2, "$0.00", cellRight),
	)
	m.AddRow(2,
		col.New(8),
		line.NewCol(4, props.Line{Color: &brandBlue, Thickness: 1, SizePercent: 100}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "TOTAL DUE:", props.Text{Size: 11, Style: fontstyle.Bold, Color: &brandBlue, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("$%.2f", data.Total), props.Text{Size: 11, Style: fontstyle.Bold, Color: &brandBlue, Align: align.Right}),
	)
	m.AddRow(10, col.New(12))

	// Footer.
	m.AddRow(5, text.NewCol(12, "Thank you for your business!", props.Text{Size: 9, Color: &gray, Align: align.Center}))
	m.AddRow(5, text.NewCol(12, data.Company.Name+" - AI-Powered Technology Consulting", props.Text{Size: 9, Color: &gray, Align: align.Center}))

	return m
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
