package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promptstudio/internal/service"
	"promptstudio/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

const sampleReport = "Evaluation Report\n" +
	"====================\n" +
	"Prompt: a cyberpunk city\nStyle: cyberpunk\nImage: images/x.png\nAlignment: Aligned\nTimestamp: 2025-03-14 09:26:53\n\n"

func TestReportHandler_ServeHTTP_PlainText(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionService(ctrl)
	sessions.EXPECT().Report(gomock.Any()).Return(sampleReport, nil)

	handler := NewReportHandler(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if w.Header().Get("Content-Disposition") != "" {
		t.Error("Content-Disposition set without download parameter")
	}
	if w.Body.String() != sampleReport {
		t.Errorf("body = %q, want the report verbatim", w.Body.String())
	}
}

func TestReportHandler_ServeHTTP_Download(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionService(ctrl)
	sessions.EXPECT().Report(gomock.Any()).Return(sampleReport, nil)

	handler := NewReportHandler(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/report?download=1", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "evaluation_report.txt") {
		t.Errorf("Content-Disposition = %q, want attachment filename", cd)
	}
}

func TestReportHandler_ServeHTTP_HTML(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionService(ctrl)
	sessions.EXPECT().ReportMarkdown(gomock.Any()).Return(
		"# Evaluation Report\n\n| Prompt | Style |\n| --- | --- |\n| a cyberpunk city | cyberpunk |\n", nil)

	handler := NewReportHandler(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/report?format=html", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<h1") {
		t.Errorf("body missing rendered heading:\n%s", body)
	}
	if !strings.Contains(body, "<table>") {
		t.Errorf("body missing rendered table:\n%s", body)
	}
	if !strings.Contains(body, "a cyberpunk city") {
		t.Errorf("body missing record content:\n%s", body)
	}
}

func TestReportHandler_ServeHTTP_ServiceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionService(ctrl)
	sessions.EXPECT().Report(gomock.Any()).
		Return("", service.WrapError(service.ErrPersistence, errors.New("disk I/O error")))

	handler := NewReportHandler(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestReportHandler_ServeHTTP_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionService(ctrl)

	handler := NewReportHandler(sessions)

	req := httptest.NewRequest(http.MethodPost, "/api/report", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
