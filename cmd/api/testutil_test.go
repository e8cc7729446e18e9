package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aoideee/readinglog/internal/data"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

type testApp struct {
	app     *applicationDependencies
	db      *sql.DB
	handler http.Handler
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	ctx := context.Background()
	db, err := data.Open(ctx, data.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, data.Migrate(ctx, db, data.DialectSQLite))

	cfg, err := loadConfig(nil, func(string) string { return "" })
	require.NoError(t, err)
	cfg.environment = "testing"
	cfg.limiter.enabled = false
	cfg.maxBodyBytes = 2048

	app := &applicationDependencies{
		config:  cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:  data.NewModels(db, data.DialectSQLite),
		metrics: newMetrics(),
		now:     func() time.Time { return testNow },
	}
	return &testApp{app: app, db: db, handler: app.routes()}
}

// do sends a request with an optional JSON body and returns the recorder.
func (ta *testApp) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a response body into dst.
func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

func bookPayload() map[string]any {
	return map[string]any{
		"title":          "T",
		"author":         "A",
		"genre":          "G",
		"pages":          100,
		"status":         "completed",
		"completed_date": "2024-01-01",
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
