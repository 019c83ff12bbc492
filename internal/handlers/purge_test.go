package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"promptstudio/internal/service"
	"promptstudio/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func TestPurgeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		mockSetup  func(*mocks.MockSessionService)
		wantStatus int
		check      func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "successful purge",
			method: http.MethodDelete,
			mockSetup: func(m *mocks.MockSessionService) {
				m.EXPECT().ClearHistory(gomock.Any()).Return(service.PurgeResult{
					ArtifactsRemoved: 2,
					ArtifactsMissing: 1,
				}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp PurgeResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decoding response: %v", err)
				}
				if resp.ArtifactsRemoved != 2 || resp.ArtifactsMissing != 1 {
					t.Errorf("response = %+v", resp)
				}
				if len(resp.Failures) != 0 {
					t.Errorf("failures = %v, want none", resp.Failures)
				}
			},
		},
		{
			name:   "purge succeeds despite cleanup failures",
			method: http.MethodDelete,
			mockSetup: func(m *mocks.MockSessionService) {
				m.EXPECT().ClearHistory(gomock.Any()).Return(service.PurgeResult{
					ArtifactsRemoved: 1,
					Failures:         []string{"c.png: permission denied"},
				}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp PurgeResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decoding response: %v", err)
				}
				if len(resp.Failures) != 1 {
					t.Errorf("failures = %v, want 1 entry", resp.Failures)
				}
			},
		},
		{
			name:   "row deletion failure",
			method: http.MethodDelete,
			mockSetup: func(m *mocks.MockSessionService) {
				m.EXPECT().ClearHistory(gomock.Any()).
					Return(service.PurgeResult{}, service.WrapError(service.ErrPersistence, errors.New("database is locked")))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			mockSetup:  func(m *mocks.MockSessionService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sessions := mocks.NewMockSessionService(ctrl)
			tt.mockSetup(sessions)

			handler := NewPurgeHandler(sessions)

			req := httptest.NewRequest(tt.method, "/api/history", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}
