package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const emitTimeout = 5 * time.Second

// Notifier delivers a user-facing notification. Delivery is a side channel:
// the pipeline treats every notification as best-effort.
type Notifier interface {
	Emit(ctx context.Context, userID, title, message, typ, actionURL string) error
}

type notification struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	ActionURL string `json:"action_url,omitempty"`
}

type HTTPEmitter struct {
	baseURL string
	client  *http.Client
}

func NewHTTPEmitter(baseURL string) *HTTPEmitter {
	return &HTTPEmitter{baseURL: baseURL, client: &http.Client{Timeout: emitTimeout}}
}

func (e *HTTPEmitter) Emit(ctx context.Context, userID, title, message, typ, actionURL string) error {
	body, err := json.Marshal(notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		ActionURL: actionURL,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/notifications", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: status %d", resp.StatusCode)
	}
	return nil
}

// BestEffort logs and swallows every failure so a notification can never
// roll back an already-committed state transition.
type BestEffort struct{ next Notifier }

func NewBestEffort(next Notifier) *BestEffort { return &BestEffort{next: next} }

func (b *BestEffort) Emit(ctx context.Context, userID, title, message, typ, actionURL string) error {
	if err := b.next.Emit(ctx, userID, title, message, typ, actionURL); err != nil {
		log.Printf("notify: dropped %q for user %s: %v", typ, userID, err)
	}
	return nil
}
