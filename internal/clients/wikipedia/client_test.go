package wikipedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetSummary_ParsesResponse(t *testing.T) {
	mockResp := map[string]interface{}{
		"title":   "Acme Industries",
		"extract": "Acme Industries is an Indian industrial conglomerate headquartered in Mumbai.",
		"type":    "standard",
		"content_urls": map[string]interface{}{
			"desktop": map[string]interface{}{
				"page": "https://en.wikipedia.org/wiki/Acme_Industries",
			},
		},
	}

	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mockResp)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	summary, err := client.GetSummary(context.Background(), "Acme Industries")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary == nil {
		t.Fatal("expected a summary")
	}

	if capturedPath != "/api/rest_v1/page/summary/Acme%20Industries" &&
		capturedPath != "/api/rest_v1/page/summary/Acme Industries" {
		t.Errorf("unexpected path: %s", capturedPath)
	}
	if summary.Title != "Acme Industries" {
		t.Errorf("title = %q", summary.Title)
	}
	if summary.Description == "" {
		t.Error("expected a description")
	}
	if summary.URL != "https://en.wikipedia.org/wiki/Acme_Industries" {
		t.Errorf("url = %q", summary.URL)
	}
}

func TestGetSummary_NotFoundIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"Not found."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	summary, err := client.GetSummary(context.Background(), "No Such Page")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if summary != nil {
		t.Errorf("expected nil summary, got %+v", summary)
	}
}

func TestGetSummary_EmptyExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"title": "Stub"})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	summary, err := client.GetSummary(context.Background(), "Stub")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary != nil {
		t.Errorf("empty extract should yield nil summary, got %+v", summary)
	}
}

func TestGetSummary_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSummary(context.Background(), "Acme")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
