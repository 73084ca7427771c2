package sink

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"promoback/internal/platform/config"
)

func TestSheetMirrorDisabledWithoutWebhook(t *testing.T) {
	mirror := NewSheetMirror(config.Config{})
	if _, ok := mirror.(DisabledMirror); !ok {
		t.Fatalf("expected disabled mirror, got %T", mirror)
	}
	if err := mirror.Append(context.Background(), "sheet", nil); err != nil {
		t.Fatalf("disabled append: %v", err)
	}
}

func TestWebhookMirrorPostsRows(t *testing.T) {
	var got sheetPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mirror := NewSheetMirror(config.Config{SheetsWebhookURL: server.URL})
	rows := [][]string{{"a", "b"}, {"c", "d"}}
	if err := mirror.Replace(context.Background(), "payroll", rows); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got.Action != "replace" || got.Worksheet != "payroll" || len(got.Rows) != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestWebhookMirrorSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	mirror := NewSheetMirror(config.Config{SheetsWebhookURL: server.URL})
	if err := mirror.Append(context.Background(), "sheet", nil); err == nil {
		t.Fatal("expected error on 502")
	}
}
