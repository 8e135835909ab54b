package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/invest"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func fixedNow() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }

func newTestServer(load invest.IndexLoader) *Server {
	return New(Options{
		Calculator:  &invest.Calculator{Load: load, Currency: "ILS", Now: fixedNow},
		CORSOrigins: []string{"*"},
		CacheTTL:    time.Hour,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// money is a Money as encoded in JSON.
type money struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

const currentBody = `{
	"deposits": [{"year": "2015", "amount": "10000"}],
	"current_value": "20000",
	"current_commission": "0",
	"as_of": "2024"
}`

const compareBody = `{
	"deposits": [{"year": "2015", "amount": "10000"}],
	"current_value": "20000",
	"current_commission": "0",
	"as_of": "2024",
	"new_yield": "10",
	"new_commission": "0",
	"new_transaction_fee": "0",
	"years_to_project": "10"
}`

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSnapshot(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodPost, "/api/snapshot", currentBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		Snapshot struct {
			NetAvailable money  `json:"net_available"`
			TaxOwed      money  `json:"tax_owed"`
			Index        string `json:"index"`
		} `json:"snapshot"`
		Comparison *json.RawMessage `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, invest.StaticIndexName, got.Snapshot.Index)
	assert.Equal(t, money{"ILS", "17845"}, got.Snapshot.NetAvailable)
	assert.Equal(t, money{"ILS", "2155"}, got.Snapshot.TaxOwed)
	assert.Nil(t, got.Comparison)
}

func TestCompare(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodPost, "/api/compare", compareBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Comparison struct {
			Years          int    `json:"years"`
			Recommendation string `json:"recommendation"`
		} `json:"comparison"`
		Chart []struct {
			Year    int     `json:"year"`
			Current float64 `json:"current"`
			New     float64 `json:"new"`
		} `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 10, got.Comparison.Years)
	assert.Contains(t, []string{"MOVE", "STAY"}, got.Comparison.Recommendation)
	require.Len(t, got.Chart, 11)
	assert.Equal(t, 0, got.Chart[0].Year)
	assert.InDelta(t, 20000, got.Chart[0].Current, 0.001)
	assert.InDelta(t, 17845, got.Chart[0].New, 0.001)
}

func TestValidationErrors(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodPost, "/api/compare", `{"current_value": "abc"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "invalid input", got.Error)
	assert.Contains(t, got.Fields, "deposits")
	assert.Contains(t, got.Fields, "current_value")
	assert.Contains(t, got.Fields, "new_yield")
	assert.NotEmpty(t, got.RequestID)
}

func TestInvalidBody(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodPost, "/api/snapshot", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestCannotCompute(t *testing.T) {
	body := strings.Replace(currentBody, `"2015"`, `"2030"`, 1)
	rec := do(t, newTestServer(nil).Router(), http.MethodPost, "/api/snapshot", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Details, "invalid input")
}

func TestProject(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodPost, "/api/project",
		`{"start": "100000", "yield": "5", "commission": "0", "years": "3"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Years  int     `json:"years"`
		Series []money `json:"series"`
		Final  money   `json:"final"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Years)
	require.Len(t, got.Series, 4)
	assert.Equal(t, money{"ILS", "115762.5"}, got.Final)
}

func TestProject_TooManyYears(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodPost, "/api/project",
		`{"start": "100000", "yield": "5", "years": "2000000000"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Fields, "years")
}

func TestCPI(t *testing.T) {
	rec := do(t, newTestServer(nil).Router(), http.MethodGet, "/api/cpi?from=2015&to=2024", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got IndexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, invest.StaticIndexName, got.Name)
	assert.Len(t, got.Entries, 10)
	assert.Equal(t, invest.YM(2015, time.January), got.Range.From)

	rec = do(t, newTestServer(nil).Router(), http.MethodGet, "/api/cpi?from=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexCache(t *testing.T) {
	calls := 0
	load := func(_ context.Context, r invest.MonthRange) (*invest.Index, invest.Warnings) {
		calls++
		return invest.StaticIndex(), nil
	}
	h := newTestServer(load).Router()
	for i := 0; i < 3; i++ {
		rec := do(t, h, http.MethodPost, "/api/snapshot", currentBody)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, calls, "the index should be loaded once per range")
}

func TestIndexCache_SkipsFailures(t *testing.T) {
	calls := 0
	load := func(_ context.Context, r invest.MonthRange) (*invest.Index, invest.Warnings) {
		calls++
		var ws invest.Warnings
		ws.Add(invest.WarnCPIFetchFailed, "down")
		return invest.StaticIndex(), ws
	}
	h := newTestServer(load).Router()
	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/api/snapshot", currentBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), invest.WarnCPIFetchFailed)
	}
	assert.Equal(t, 2, calls)
}

func TestRateLimit(t *testing.T) {
	s := New(Options{
		Calculator: &invest.Calculator{Now: fixedNow},
		Limiter:    rate.NewLimiter(rate.Every(time.Hour), 1),
	})
	h := s.Router()
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, "/healthz", "").Code)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer(nil).ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/compare", bytes.NewReader(nil))
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	newTestServer(nil).Router().ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
