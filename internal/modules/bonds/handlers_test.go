package bonds

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, InitSchema(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func setupHandler(t *testing.T) (*Handler, *Repository) {
	t.Helper()

	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	service := NewService(0, 0, zerolog.Nop())
	return NewHandler(repo, service, zerolog.Nop()), repo
}

// symbolRequest builds a request with the chi URL parameter set.
func symbolRequest(method, target, symbol string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("symbol", symbol)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleCreateBond(t *testing.T) {
	handler, repo := setupHandler(t)

	body, err := json.Marshal(sampleBond())
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/bonds", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreateBond(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	stored, err := repo.GetBySymbol("TB-8Y")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 950.0, stored.MarketPrice)
}

func TestHandleCreateBond_InvalidTerms(t *testing.T) {
	handler, _ := setupHandler(t)

	b := sampleBond()
	b.FaceValue = 0
	body, _ := json.Marshal(b)

	req := httptest.NewRequest("POST", "/api/bonds", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreateBond(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateBond_Duplicate(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	body, _ := json.Marshal(sampleBond())
	req := httptest.NewRequest("POST", "/api/bonds", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreateBond(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleCreateBond_UnsetYieldSentinel(t *testing.T) {
	handler, repo := setupHandler(t)

	b := sampleBond()
	sentinel := -1.0
	b.RequiredYield = &sentinel
	body, _ := json.Marshal(b)

	req := httptest.NewRequest("POST", "/api/bonds", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreateBond(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	stored, err := repo.GetBySymbol("TB-8Y")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.RequiredYield, "the -1 sentinel must be stored as derive-on-analysis")
}

func TestHandleListBonds(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/bonds", nil)
	w := httptest.NewRecorder()
	handler.HandleListBonds(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var listed []Bond
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, "TB-8Y", listed[0].Symbol)
}

func TestHandleGetBond_NotFound(t *testing.T) {
	handler, _ := setupHandler(t)

	req := symbolRequest("GET", "/api/bonds/NOPE", "NOPE", nil)
	w := httptest.NewRecorder()
	handler.HandleGetBond(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetAnalysis(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	req := symbolRequest("GET", "/api/bonds/TB-8Y/analysis", "TB-8Y", nil)
	w := httptest.NewRecorder()
	handler.HandleGetAnalysis(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var analysis Analysis
	require.NoError(t, json.NewDecoder(w.Body).Decode(&analysis))
	assert.Equal(t, "TB-8Y", analysis.Symbol)
	assert.True(t, analysis.YieldDerived)
	assert.True(t, analysis.YTMConverged)
	assert.InDelta(t, 950.0, analysis.PresentValue, 1e-3)
}

func TestHandleUpdatePrice(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	req := symbolRequest("PUT", "/api/bonds/TB-8Y/price", "TB-8Y", []byte(`{"market_price": 975.5}`))
	w := httptest.NewRecorder()
	handler.HandleUpdatePrice(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.GetBySymbol("TB-8Y")
	require.NoError(t, err)
	assert.Equal(t, 975.5, stored.MarketPrice)
}

func TestHandleUpdatePrice_Invalid(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	req := symbolRequest("PUT", "/api/bonds/TB-8Y/price", "TB-8Y", []byte(`{"market_price": -5}`))
	w := httptest.NewRecorder()
	handler.HandleUpdatePrice(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDeleteBond(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	req := symbolRequest("DELETE", "/api/bonds/TB-8Y", "TB-8Y", nil)
	w := httptest.NewRecorder()
	handler.HandleDeleteBond(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.GetBySymbol("TB-8Y")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestHandleGetBreakEven(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	req := symbolRequest("GET", "/api/bonds/TB-8Y/break-even?price=1000", "TB-8Y", nil)
	w := httptest.NewRecorder()
	handler.HandleGetBreakEven(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result map[string]float64
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 1000.0, result["reference_price"])
	// Par reference: break-even at the coupon rate.
	assert.InDelta(t, 0.05, result["break_even_yield"], 1e-4)
}

func TestHandleGetReports(t *testing.T) {
	handler, repo := setupHandler(t)

	_, err := repo.Create(sampleBond())
	require.NoError(t, err)

	tests := []struct {
		name    string
		handle  http.HandlerFunc
		wantLen int
	}{
		{name: "sensitivity", handle: handler.HandleGetSensitivity, wantLen: 5},
		{name: "scenarios", handle: handler.HandleGetScenarios, wantLen: 5},
		{name: "frequencies", handle: handler.HandleGetFrequencies, wantLen: 3},
		{name: "amortization", handle: handler.HandleGetAmortization, wantLen: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := symbolRequest("GET", "/api/bonds/TB-8Y/"+tt.name, "TB-8Y", nil)
			w := httptest.NewRecorder()
			tt.handle(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			var rows []json.RawMessage
			require.NoError(t, json.NewDecoder(w.Body).Decode(&rows))
			assert.Len(t, rows, tt.wantLen)
		})
	}
}
