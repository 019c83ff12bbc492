package generator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newStubServer starts an images API stub that responds with the given
// handler and returns a Client pointed at it.
func newStubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return NewClient("test-key", ts.URL+"/v1", "dall-e-3")
}

func TestClient_GenerateImage(t *testing.T) {
	imageBytes := []byte("fake png bytes")

	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/generations" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}

		var req struct {
			Prompt         string `json:"prompt"`
			Model          string `json:"model"`
			ResponseFormat string `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Prompt != "a dragon, realistic style" {
			t.Errorf("request prompt = %q", req.Prompt)
		}
		if req.Model != "dall-e-3" {
			t.Errorf("request model = %q", req.Model)
		}
		if req.ResponseFormat != "b64_json" {
			t.Errorf("request response_format = %q", req.ResponseFormat)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"created": 1700000000,
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(imageBytes)},
			},
		})
	})

	got, err := client.GenerateImage(context.Background(), "a dragon, realistic style")
	if err != nil {
		t.Fatalf("GenerateImage() error = %v", err)
	}
	if string(got) != string(imageBytes) {
		t.Errorf("GenerateImage() = %q, want %q", got, imageBytes)
	}
}

func TestClient_GenerateImage_APIError(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
	})

	if _, err := client.GenerateImage(context.Background(), "a dragon"); err == nil {
		t.Fatal("GenerateImage() expected error on API failure")
	}
}

func TestClient_GenerateImage_NoData(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1700000000,"data":[]}`))
	})

	if _, err := client.GenerateImage(context.Background(), "a dragon"); err == nil {
		t.Fatal("GenerateImage() expected error on empty data")
	}
}

func TestClient_GenerateImage_BadPayload(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1700000000,"data":[{"b64_json":"%%%not-base64%%%"}]}`))
	})

	if _, err := client.GenerateImage(context.Background(), "a dragon"); err == nil {
		t.Fatal("GenerateImage() expected error on undecodable payload")
	}
}
