package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"promoback/internal/platform/config"
)

// webhookMirror pushes rows to the Apps Script web app bound to the
// spreadsheet. The script owns the credentials; the backend only needs the
// deployment URL.
type webhookMirror struct {
	url    string
	client *http.Client
}

// NewSheetMirror returns the webhook mirror, or the disabled one when no
// webhook is configured.
func NewSheetMirror(cfg config.Config) SheetMirror {
	if cfg.SheetsWebhookURL == "" {
		return DisabledMirror{}
	}
	return &webhookMirror{
		url:    cfg.SheetsWebhookURL,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

type sheetPayload struct {
	Action    string     `json:"action"`
	Worksheet string     `json:"worksheet"`
	Rows      [][]string `json:"rows"`
}

func (m *webhookMirror) Append(ctx context.Context, worksheet string, rows [][]string) error {
	return m.post(ctx, sheetPayload{Action: "append", Worksheet: worksheet, Rows: rows})
}

func (m *webhookMirror) Replace(ctx context.Context, worksheet string, rows [][]string) error {
	return m.post(ctx, sheetPayload{Action: "replace", Worksheet: worksheet, Rows: rows})
}

func (m *webhookMirror) post(ctx context.Context, payload sheetPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sheet webhook answered %d", resp.StatusCode)
	}
	return nil
}
