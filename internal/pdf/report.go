// Package pdf renders dashboard summaries as PDF reports.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/vaaltic/crm/internal/models"
)

// reportTitle must stay within cp1252: the core fonts have no UTF-8
// support, so multi-byte runes come out as mojibake.
const reportTitle = "Vaaltic CRM - Dashboard Report"

// SummaryReport renders the scoped dashboard summary for a principal.
// The result is built in memory; nothing touches the filesystem.
func SummaryReport(summary *models.DashboardSummary, user *models.User, now time.Time) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, reportTitle)
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 8, fmt.Sprintf("Generated for %s (%s) at %s", user.FullName, user.Role, now.Format(time.RFC1123)))
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "Totals")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 11)
	writeRow(doc, "Leads", fmt.Sprintf("%d", summary.TotalLeads))
	writeRow(doc, "Contacts", fmt.Sprintf("%d", summary.TotalContacts))
	writeRow(doc, "Deals", fmt.Sprintf("%d", summary.TotalDeals))
	writeRow(doc, "Won deals", fmt.Sprintf("%d", summary.WonDeals))
	writeRow(doc, "Pipeline value", summary.PipelineValue.StringFixed(2))
	writeRow(doc, "Conversion rate", fmt.Sprintf("%.1f%%", summary.ConversionRate))
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "Leads by stage")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 11)
	for _, stage := range models.LeadStages {
		writeRow(doc, string(stage), fmt.Sprintf("%d", summary.LeadStages[stage]))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render dashboard pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(doc *gofpdf.Fpdf, label, value string) {
	doc.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
	doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}
