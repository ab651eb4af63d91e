package pdf

//go:generate go run go.uber.org/mock/mockgen -source=./pdf.go -destination=./mocks/pdf_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"guesthouse/infras/otel"
	"guesthouse/shared/constant"
	"guesthouse/shared/timezone"

	"github.com/go-pdf/fpdf"
	"github.com/gosimple/unidecode"
)

const (
	fontFamily = "Helvetica"

	titleSize    = 16
	subtitleSize = 12
	bodySize     = 9
	footerSize   = 8

	lineHeight = 6.0
	rowHeight  = 7.0

	otelAttrTitle = "pdf.title"
)

// Table is rendered with a shaded header row. Rows shorter than Headers are padded.
type Table struct {
	Headers []string
	Rows    [][]string
}

type Section struct {
	Heading    string
	Paragraphs []string
	Table      *Table
}

type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

type rendererImpl struct {
	otel otel.Otel
}

func New(otel otel.Otel) Renderer {
	return &rendererImpl{otel: otel}
}

// Text reduces value to printable ASCII; the core fonts only carry a single-byte encoding.
func Text(value string) string {
	return strings.TrimSpace(unidecode.Unidecode(value))
}

func (r *rendererImpl) Render(ctx context.Context, doc Document) (body []byte, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelPDFScopeName, constant.OtelPDFScopeName+".Render")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrTitle, doc.Title)

	file := fpdf.New("P", "mm", "A4", "")
	file.SetTitle(Text(doc.Title), false)
	file.AliasNbPages("")
	file.SetFooterFunc(func() {
		file.SetY(-15)
		file.SetFont(fontFamily, "I", footerSize)
		file.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", file.PageNo()), "", 0, "C", false, 0, "")
	})

	file.AddPage()

	file.SetFont(fontFamily, "B", titleSize)
	file.CellFormat(0, 10, Text(doc.Title), "", 1, "C", false, 0, "")

	subtitle := doc.Subtitle
	if subtitle == "" {
		subtitle = "Generated " + timezone.Format(timezone.Now(), constant.DateTimeFormat)
	}

	file.SetFont(fontFamily, "", bodySize)
	file.CellFormat(0, lineHeight, Text(subtitle), "", 1, "C", false, 0, "")
	file.Ln(lineHeight)

	for _, section := range doc.Sections {
		writeSection(file, section)
	}

	var buf bytes.Buffer

	if err = file.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSection(file *fpdf.Fpdf, section Section) {
	if section.Heading != "" {
		file.SetFont(fontFamily, "B", subtitleSize)
		file.CellFormat(0, 8, Text(section.Heading), "", 1, "L", false, 0, "")
		file.Ln(2)
	}

	file.SetFont(fontFamily, "", bodySize)

	for _, paragraph := range section.Paragraphs {
		file.MultiCell(0, lineHeight, Text(paragraph), "", "L", false)
	}

	if section.Table != nil && len(section.Table.Headers) > 0 {
		writeTable(file, *section.Table)
	}

	file.Ln(lineHeight)
}

func writeTable(file *fpdf.Fpdf, table Table) {
	pageWidth, _ := file.GetPageSize()
	left, _, right, _ := file.GetMargins()
	width := (pageWidth - left - right) / float64(len(table.Headers))

	file.SetFont(fontFamily, "B", bodySize)
	file.SetFillColor(220, 220, 220)

	for _, header := range table.Headers {
		file.CellFormat(width, rowHeight, Text(header), "1", 0, "C", true, 0, "")
	}

	file.Ln(-1)
	file.SetFont(fontFamily, "", bodySize)

	if len(table.Rows) == 0 {
		file.CellFormat(width*float64(len(table.Headers)), rowHeight, "No data", "1", 1, "C", false, 0, "")

		return
	}

	for _, row := range table.Rows {
		for index := range table.Headers {
			cell := ""
			if index < len(row) {
				cell = Text(row[index])
			}

			file.CellFormat(width, rowHeight, fit(file, cell, width), "1", 0, "L", false, 0, "")
		}

		file.Ln(-1)
	}
}

// fit shortens text so it stays inside a cell of the given width.
func fit(file *fpdf.Fpdf, text string, width float64) string {
	const padding = 2

	for len(text) > 0 && file.GetStringWidth(text) > width-padding {
		text = text[:len(text)-1]
	}

	return text
}
