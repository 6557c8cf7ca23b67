package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/log"
)

// ReportOptions tunes WriteReportPDF.
type ReportOptions struct {
	// FontFile is a UTF-8 TrueType font. Without it the core Arial font is
	// used and characters outside cp1252 print as ".".
	FontFile string
	// Generated stamps the report; zero means now.
	Generated time.Time
}

const fontFamily = "report"

// WriteReportPDF writes an A4 report of one inspection: basic information,
// composition, defects and total sample.
func WriteReportPDF(w io.Writer, r inspection.Record, opts ReportOptions) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)

	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontFile != "" {
		pdf.AddUTF8Font(fontFamily, "", opts.FontFile)
		pdf.AddUTF8Font(fontFamily, "B", opts.FontFile)
		family = fontFamily
		tr = func(s string) string { return s }
	}
	pdf.AddPage()

	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(190, 10, tr("Rice Inspection Report"), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(190, 6, tr("Generated: "+generated.Format(inspection.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	section := func(title string) {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont(family, "B", 12)
		pdf.CellFormat(190, 8, tr(title), "1", 1, "L", true, 0, "")
	}

	section("Basic Information")
	pdf.SetFont(family, "", 11)
	pairs := [][2]string{
		{"Name", r.Name},
		{"Inspection ID", r.ID},
		{"Standard", r.StandardLabel()},
		{"Price", r.PriceLabel()},
		{"Create Date", inspection.FormatTime(r.CreatedAt)},
		{"Update Date", inspection.FormatTime(r.UpdatedAt)},
		{"Sampling Point", r.SamplingLabel()},
		{"Note", r.NoteLabel()},
		{"Total Sample", r.TotalSampleLabel()},
	}
	if r.SamplingDateTime != nil {
		pairs = append(pairs, [2]string{"Sampling Date", inspection.FormatTime(*r.SamplingDateTime)})
	}
	for _, p := range pairs {
		pdf.CellFormat(50, 7, tr(p[0]), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(140, 7, tr(p[1]), "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	section("Composition")
	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, tr("Name"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, tr("Length"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, tr("Actual"), "1", 1, "C", true, 0, "")
	pdf.SetFont(family, "", 10)
	for _, row := range r.Result.Composition {
		pdf.CellFormat(90, 6, tr(row.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, tr(row.Length), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, tr(inspection.FormatPercent(row.Actual)), "1", 1, "R", false, 0, "")
	}
	if len(r.Result.Composition) == 0 {
		pdf.CellFormat(190, 6, tr("No data"), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	section("Defect Rice")
	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(140, 7, tr("Name"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, tr("Actual"), "1", 1, "C", true, 0, "")
	pdf.SetFont(family, "", 10)
	for _, row := range r.Result.DefectRice {
		pdf.CellFormat(140, 6, tr(row.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, tr(inspection.FormatPercent(row.Actual)), "1", 1, "R", false, 0, "")
	}
	if len(r.Result.DefectRice) == 0 {
		pdf.CellFormat(190, 6, tr("No data"), "1", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	log.Debug(log.CatExport, "report written", "id", r.ID)
	return nil
}
