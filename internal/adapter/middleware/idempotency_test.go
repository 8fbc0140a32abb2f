package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// helper: new Echo with the middleware and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, ttl))
	e.POST("/payments", handler)
	e.GET("/payments", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func validHeaders() map[string]string {
	return map[string]string{
		"Ax-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
		"Ax-Actor-Id":   "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}
}

// simple handler to exercise respRecorder capture & saveFinal
func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/payments", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_HeaderValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	cases := []struct {
		name   string
		mutate func(h map[string]string)
	}{
		{"missing Ax-Request-Id", func(h map[string]string) { delete(h, "Ax-Request-Id") }},
		{"invalid Ax-Request-Id", func(h map[string]string) { h["Ax-Request-Id"] = "NOT-VALID" }},
		{"invalid Ax-Request-At", func(h map[string]string) { h["Ax-Request-At"] = "not-a-time" }},
		{"skewed Ax-Request-At", func(h map[string]string) {
			h["Ax-Request-At"] = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
		}},
		{"missing Ax-Actor-Id", func(h map[string]string) { delete(h, "Ax-Actor-Id") }},
		{"invalid Ax-Actor-Id", func(h map[string]string) { h["Ax-Actor-Id"] = "shorty" }},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeaders()
			tt.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/payments", mkJSONBody(t, map[string]int{"x": 1}), h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_FirstCallRunsHandler_SecondReplays(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"n": calls})
	})

	h := validHeaders()
	body := map[string]string{"application_id": "cccccccccccccccccccccccccccccccc"}

	rec1 := doReq(t, e, http.MethodPost, "/payments", mkJSONBody(t, body), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first call: want 201, got %d", rec1.Code)
	}

	rec2 := doReq(t, e, http.MethodPost, "/payments", mkJSONBody(t, body), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay: want 201, got %d (%s)", rec2.Code, rec2.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
}

func Test_SameRequestIdDifferentBody_Conflicts(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	h := validHeaders()
	rec := doReq(t, e, http.MethodPost, "/payments", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed call: want 201, got %d", rec.Code)
	}

	rec = doReq(t, e, http.MethodPost, "/payments", mkJSONBody(t, map[string]int{"x": 2}), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body with same Ax-Request-Id: want 409, got %d", rec.Code)
	}
}

func Test_InProgressRequest_Conflicts(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	h := validHeaders()
	body := map[string]int{"x": 1}

	// Simulate a request that grabbed the provisional lock but never finished.
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash(mustMarshal(t, body)), RequestID: h["Ax-Request-Id"], CreatedAt: nowUTC()}
	key := buildKey(http.MethodPost, "/payments", h["Ax-Actor-Id"], h["Ax-Request-Id"])
	if ok, err := provisionalSet(nowCtx(t), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional: ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/payments", mkJSONBody(t, body), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress duplicate: want 409, got %d", rec.Code)
	}
}

func Test_RedisDown_Returns503(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)
	mr.Close() // kill the store before the request

	rec := doReq(t, e, http.MethodPost, "/payments", mkJSONBody(t, map[string]int{"x": 1}), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}
