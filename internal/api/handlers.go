/**
 * @description
 * This file contains the HTTP handlers for the anti-fraud service's API
 * endpoints. The service is event-driven, so the HTTP surface is small: a
 * health check and a read-only view of an account's accumulated daily total.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/domain, internal/store: For models and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/velopay/antifraud-service/internal/domain"
	"github.com/velopay/antifraud-service/internal/store"
)

// Handlers holds the store that handlers will read from.
type Handlers struct {
	accumulators store.AccumulatorStore
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(accumulators store.AccumulatorStore) *Handlers {
	return &Handlers{accumulators: accumulators}
}

// dailyTotalResponse is the read model for an account's accumulated total on
// one UTC day.
type dailyTotalResponse struct {
	AccountID   string          `json:"account_id"`
	Day         string          `json:"day"`
	Accumulated decimal.Decimal `json:"accumulated"`
}

// HealthHandler reports service liveness.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDailyTotalHandler returns the accumulated approved total for an account
// on a given UTC day. The day defaults to today and can be overridden with
// ?date=YYYY-MM-DD.
func (h *Handlers) GetDailyTotalHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	day := domain.DayOf(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		day = domain.DayOf(parsed)
	}

	acc, err := h.accumulators.Get(r.Context(), accountID, day)
	if err != nil {
		if errors.Is(err, store.ErrAccumulatorNotFound) {
			h.writeError(w, http.StatusNotFound, "No accumulated total for this account and day")
			return
		}
		log.Printf("level=error component=api msg=\"failed to load daily total\" account_id=%s err=%v", accountID, err)
		h.writeError(w, http.StatusInternalServerError, "Unable to load daily total")
		return
	}

	h.writeJSON(w, http.StatusOK, dailyTotalResponse{
		AccountID:   acc.AccountID.String(),
		Day:         acc.Day.Format("2006-01-02"),
		Accumulated: acc.Accumulated.Decimal(),
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
