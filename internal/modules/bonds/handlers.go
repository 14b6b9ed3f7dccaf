package bonds

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/bond-desk/pkg/bond"
)

// Handler handles bond catalogue and analysis HTTP requests
type Handler struct {
	repo    *Repository
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new bonds handler
func NewHandler(repo *Repository, service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
		log:     log.With().Str("handler", "bonds").Logger(),
	}
}

// HandleListBonds returns the full catalogue
func (h *Handler) HandleListBonds(w http.ResponseWriter, r *http.Request) {
	bonds, err := h.repo.GetAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bonds == nil {
		bonds = []Bond{}
	}
	h.writeJSON(w, http.StatusOK, bonds)
}

// HandleCreateBond catalogues a new bond
func (h *Handler) HandleCreateBond(w http.ResponseWriter, r *http.Request) {
	var b Bond
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if b.Symbol == "" {
		h.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if err := b.Terms().Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if b.RequiredYield != nil && *b.RequiredYield == bond.UnsetYield {
		// The console sentinel; stored as "derive on analysis".
		b.RequiredYield = nil
	}

	if existing, err := h.repo.GetBySymbol(b.Symbol); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	} else if existing != nil {
		h.writeError(w, http.StatusConflict, "bond already exists")
		return
	}

	created, err := h.repo.Create(&b)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info().Str("symbol", created.Symbol).Msg("Bond catalogued")
	h.writeJSON(w, http.StatusCreated, created)
}

// HandleGetBond returns one catalogued bond
func (h *Handler) HandleGetBond(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBond(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

// HandleDeleteBond removes a bond from the catalogue
func (h *Handler) HandleDeleteBond(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if err := h.repo.Delete(symbol); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleUpdatePrice sets a new observed market price
func (h *Handler) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	var body struct {
		MarketPrice float64 `json:"market_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.MarketPrice <= 0 {
		h.writeError(w, http.StatusBadRequest, bond.ErrInvalidMarketPrice.Error())
		return
	}

	if err := h.repo.UpdatePrice(symbol, body.MarketPrice); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleGetAnalysis returns the full analysis for one bond
func (h *Handler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBond(w, r)
	if !ok {
		return
	}

	analysis, err := h.service.Analyze(b)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, analysis)
}

// HandleGetSensitivity returns the ±0.5% step price sensitivity sweep
func (h *Handler) HandleGetSensitivity(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBond(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Sensitivity(b)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

// HandleGetScenarios returns the ±2%/±1% scenario table
func (h *Handler) HandleGetScenarios(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBond(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Scenarios(b)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

// HandleGetFrequencies returns the payment frequency comparison
func (h *Handler) HandleGetFrequencies(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBond(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Frequencies(b)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

// HandleGetAmortization returns the payment schedule
func (h *Handler) HandleGetAmortization(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBond(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Amortization(b)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

// HandleGetBreakEven solves the break-even yield against a reference price
// (?price=, defaulting to the bond's market price)
func (h *Handler) HandleGetBreakEven(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBond(w, r)
	if !ok {
		return
	}

	reference := b.MarketPrice
	if param := r.URL.Query().Get("price"); param != "" {
		parsed, err := strconv.ParseFloat(param, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid price parameter")
			return
		}
		reference = parsed
	}
	if reference <= 0 {
		h.writeError(w, http.StatusBadRequest, "reference price must be positive")
		return
	}

	yield, err := h.service.BreakEven(b, reference)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]float64{
		"reference_price":  reference,
		"break_even_yield": yield,
	})
}

// Helper methods

func (h *Handler) loadBond(w http.ResponseWriter, r *http.Request) (*Bond, bool) {
	symbol := chi.URLParam(r, "symbol")

	b, err := h.repo.GetBySymbol(symbol)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if b == nil {
		h.writeError(w, http.StatusNotFound, "bond not found")
		return nil, false
	}
	return b, true
}

func (h *Handler) writeAnalysisError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, bond.ErrYieldUnset) ||
		errors.Is(err, bond.ErrInvalidFaceValue) ||
		errors.Is(err, bond.ErrInvalidCouponRate) ||
		errors.Is(err, bond.ErrInvalidMarketPrice) ||
		errors.Is(err, bond.ErrInvalidRemainingYears) ||
		errors.Is(err, bond.ErrInvalidPaymentFrequency) {
		status = http.StatusUnprocessableEntity
	}
	h.writeError(w, status, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
