package pdfgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reporter/pkg/domain"
	"reporter/pkg/serrors"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Options configure where and how report documents are written.
type Options struct {
	// WorkDir is the directory temp artifacts are written to. Empty means the
	// process working directory.
	WorkDir string
	// Title is the document title block text.
	Title string
}

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "Catálogo de Videojuegos"

// renderer is the concrete fpdf-backed implementation of Renderer.
type renderer struct {
	options Options
}

// New creates a Renderer writing A4 portrait documents into the configured
// work directory.
func New(options Options) Renderer {
	if options.Title == "" {
		options.Title = DefaultTitle
	}

	return &renderer{options: options}
}

// column layout in mm, totals 180 within A4 margins.
var catalogColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"ID", 15, "C"},
	{"Nombre", 75, "L"},
	{"Género", 40, "L"},
	{"Año", 20, "C"},
	{"Precio", 30, "R"},
}

// Render builds the catalog document and writes it to a uniquely named file.
// Uniqueness comes from a per-call token, so concurrent invocations never
// collide.
func (r *renderer) Render(_ context.Context, items []domain.CatalogItem, location *domain.GeoContext) (string, error) {
	name := fmt.Sprintf("TEMP_%s.pdf", uuid.NewString())
	path := filepath.Join(r.options.WorkDir, name)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(r.options.Title), false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb} - Documento generado automáticamente", pdf.PageNo())),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// title block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 10, tr(r.options.Title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado: %s", time.Now().Format("2006-01-02 15:04:05"))),
		"", 1, "C", false, 0, "")
	if location != nil {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Ubicación: %s, %s (%.4f, %.4f)",
			location.City, location.Country, location.Lat, location.Lon)),
			"", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range catalogColumns {
		pdf.CellFormat(col.width, 8, tr(col.header), "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	// one row per item, alternating fill for readability
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(33, 37, 41)
	for i, item := range items {
		if i%2 == 0 {
			pdf.SetFillColor(240, 244, 248)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		cells := []string{
			fmt.Sprintf("%d", item.ID),
			item.Name,
			item.GenreText(),
			item.YearText(),
			item.PriceText(),
		}
		for c, col := range catalogColumns {
			pdf.CellFormat(col.width, 7, tr(cells[c]), "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		// never leave a partially-written artifact behind
		_ = os.Remove(path)

		return "", serrors.Wrap(serrors.ErrRender, err, "could not write report document")
	}

	return path, nil
}
