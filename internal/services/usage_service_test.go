package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

func sampleRows() []models.UsageRow {
	return []models.UsageRow{
		{UserID: 1, Email: "heavy@example.com", Requests: 12000, CreditsSpent: 4400, LastUsedAt: "2026-08-01 10:00:00"},
		{UserID: 2, Email: "light@example.com", Requests: 30, CreditsSpent: 12, LastUsedAt: "2026-07-15 08:30:00"},
	}
}

func TestBuildReportPDF(t *testing.T) {
	svc := UsageService{}
	data, filename, err := svc.BuildReportPDF(sampleRows(), time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("pdf error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if filename != "USAGE_2026-08-28_0900.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestBuildReportPDFEmpty(t *testing.T) {
	svc := UsageService{}
	data, _, err := svc.BuildReportPDF(nil, time.Now())
	if err != nil || len(data) == 0 {
		t.Fatalf("empty report should still render: err=%v len=%d", err, len(data))
	}
}

func TestSummarizeUnconfigured(t *testing.T) {
	svc := UsageService{}
	_, err := svc.Summarize(context.Background(), sampleRows())
	if !domain.IsUpstream(err) {
		t.Fatalf("missing upstream URL should yield UpstreamError, got %v", err)
	}
}

func TestSummarizeJSONUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary":"usage is dominated by one tenant"}`))
	}))
	defer srv.Close()

	svc := UsageService{SummaryURL: srv.URL}
	got, err := svc.Summarize(context.Background(), sampleRows())
	if err != nil {
		t.Fatalf("summarize error: %v", err)
	}
	if got != "usage is dominated by one tenant" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSummarizePlainTextUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text summary\n"))
	}))
	defer srv.Close()

	svc := UsageService{SummaryURL: srv.URL}
	got, err := svc.Summarize(context.Background(), sampleRows())
	if err != nil {
		t.Fatalf("summarize error: %v", err)
	}
	if got != "plain text summary" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := UsageService{SummaryURL: srv.URL}
	if _, err := svc.Summarize(context.Background(), sampleRows()); !domain.IsUpstream(err) {
		t.Fatalf("5xx upstream should yield UpstreamError, got %v", err)
	}
}

func TestSummarizeRespectsContextCancel(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel r.Context().
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	svc := UsageService{SummaryURL: srv.URL}
	if _, err := svc.Summarize(ctx, sampleRows()); err == nil {
		t.Fatalf("canceled context should abort the upstream call")
	}
}
