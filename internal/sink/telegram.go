package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"promoback/internal/platform/config"
)

// Telegram relays messages to the verification channel through the Bot API.
type Telegram struct {
	token  string
	chatID string
	client *http.Client
}

// NewChannelRelay returns the Telegram relay, or the disabled one when the
// bot token is not configured.
func NewChannelRelay(cfg config.Config) ChannelRelay {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return DisabledRelay{}
	}
	return &Telegram{
		token:  cfg.TelegramBotToken,
		chatID: cfg.TelegramChatID,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

type telegramResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
	Description string `json:"description"`
}

func (t *Telegram) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.Media) > 0 {
		return t.sendDocument(ctx, msg)
	}
	return t.sendText(ctx, t.chatID, msg.Text)
}

// SendTo targets a specific chat instead of the shared channel. Used for
// admin login codes, which go to the admin's own binding.
func (t *Telegram) SendTo(ctx context.Context, chatID, text string) (string, error) {
	return t.sendText(ctx, chatID, text)
}

func (t *Telegram) sendText(ctx context.Context, chatID, text string) (string, error) {
	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.apiURL("sendMessage"), bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.do(req)
}

func (t *Telegram) sendDocument(ctx context.Context, msg Message) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", t.chatID); err != nil {
		return "", err
	}
	if msg.Text != "" {
		if err := writer.WriteField("caption", msg.Text); err != nil {
			return "", err
		}
	}
	name := msg.MediaName
	if name == "" {
		name = "upload.bin"
	}
	part, err := writer.CreateFormFile("document", name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(msg.Media); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL("sendDocument"), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return t.do(req)
}

func (t *Telegram) apiURL(method string) string {
	return fmt.Sprintf("https://api.telegram.org/bot%s/%s", t.token, method)
}

func (t *Telegram) do(req *http.Request) (string, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var parsed telegramResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("telegram response parse failed: %w", err)
	}
	if !parsed.OK {
		return "", fmt.Errorf("telegram api error: %s", parsed.Description)
	}
	return fmt.Sprintf("%d", parsed.Result.MessageID), nil
}
