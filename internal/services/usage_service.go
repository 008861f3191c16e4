package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// UsageService aggregates api_usage for the admin dashboard and produces the
// PDF export and the optional AI summary.
type UsageService struct {
	UsageRepo repositories.UsageRepository
	RequestID string

	// SummaryURL is the optional upstream summarizer. Empty means the
	// summary endpoint is not available.
	SummaryURL string

	// HTTPClient overrides the default client in tests.
	HTTPClient *http.Client
}

func (s UsageService) List(p pagination.Pagination) ([]models.UsageRow, int64, error) {
	return s.UsageRepo.Aggregate(p)
}

// BuildReportPDF renders the usage aggregates into a downloadable report.
func (s UsageService) BuildReportPDF(rows []models.UsageRow, generatedAt time.Time) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "usage", "export_pdf", fmt.Sprintf("rows=%d", len(rows)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Usage Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "USAGE REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Generated: "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(20, 7, "User", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Email", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Requests", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Credits", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Last Used", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	var totalRequests, totalCredits int64
	for _, row := range rows {
		pdf.CellFormat(20, 6, fmt.Sprintf("#%d", row.UserID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, row.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, utils.FormatThousands(row.Requests), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, utils.FormatThousands(row.CreditsSpent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, row.LastUsedAt, "1", 1, "L", false, 0, "")
		totalRequests += row.Requests
		totalCredits += row.CreditsSpent
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Total: %s requests, %s credits",
		utils.FormatThousands(totalRequests), utils.FormatThousands(totalCredits)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := "USAGE_" + utils.SafeFilenamePart(generatedAt.Format("2006-01-02_1504")) + ".pdf"
	return buf.Bytes(), filename, nil
}

// Summarize sends the aggregates to the configured upstream summarizer and
// returns its text. The request context is passed through so a client abort
// cancels the upstream call.
func (s UsageService) Summarize(ctx context.Context, rows []models.UsageRow) (string, error) {
	if strings.TrimSpace(s.SummaryURL) == "" {
		return "", domain.UpstreamError{Service: "usage summarizer"}
	}

	payload, err := json.Marshal(map[string]any{"rows": rows})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.SummaryURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", domain.UpstreamError{Service: "usage summarizer", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", domain.UpstreamError{Service: "usage summarizer", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", domain.UpstreamError{Service: "usage summarizer",
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Summary == "" {
		// plain-text upstreams are acceptable
		return strings.TrimSpace(string(body)), nil
	}
	return parsed.Summary, nil
}
