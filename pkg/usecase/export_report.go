package usecase

import (
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

// RenderReportPDF renders a scan record into a PDF document: title, scan
// type, the time window, and the markdown source as plain formatted text.
// It is a pure function of the record; no persistence, no network access.
func (x *UseCase) RenderReportPDF(scan *model.Scan, w io.Writer) error {
	if scan == nil {
		return goerr.Wrap(types.ErrValidationFailed, "scan record is nil")
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Pentest Report", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 7, "Scan Type: "+string(scan.ScanType), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Start Time: "+scan.StartedAt.Format(time.RFC1123), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "End Time: "+scan.FinishedAt.Format(time.RFC1123), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "BU", 14)
	doc.CellFormat(0, 8, "Report:", "", 1, "L", false, 0, "")
	doc.Ln(2)

	report := scan.MarkdownReport
	if report == "" {
		report = "No report available."
	}

	doc.SetFont("Courier", "", 10)
	for _, line := range strings.Split(report, "\n") {
		doc.MultiCell(0, 5, line, "", "L", false)
	}

	if err := doc.Output(w); err != nil {
		return goerr.Wrap(err, "failed to render PDF", goerr.V("scanID", scan.ID))
	}

	return nil
}
