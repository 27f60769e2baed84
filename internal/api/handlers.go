package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"SmartWorth/internal/model"
	"SmartWorth/internal/recorder"
	"SmartWorth/internal/service"
	"SmartWorth/internal/similarity"
	"SmartWorth/internal/watchlist"
)

// Handlers serves the /api/v1 endpoints.
type Handlers struct {
	Service      *service.Service
	Watchlist    *watchlist.Manager
	SimilarLimit int
}

type nameRequest struct {
	Name string `json:"name"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, recorder.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[ERROR] request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryInt(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := h.Service.Analyze(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if h.Watchlist != nil {
		h.Watchlist.MarkAnalyzed(res)
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.Products()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if products == nil {
		products = []model.ProductRecord{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Product(mux.Vars(r)["name"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(mux.Vars(r)["name"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 50)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	entries, err := h.Service.History(mux.Vars(r)["name"], limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) LatestPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.Service.LatestPrices(mux.Vars(r)["name"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

func (h *Handlers) Similar(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", h.SimilarLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	matches, err := h.Service.Similar(r.URL.Query().Get("name"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if matches == nil {
		matches = []similarity.Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *Handlers) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	if h.Watchlist == nil {
		writeError(w, http.StatusNotFound, "watchlist disabled")
		return
	}
	items := h.Watchlist.List()
	if items == nil {
		items = []model.TrackedProduct{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) TrackProduct(w http.ResponseWriter, r *http.Request) {
	if h.Watchlist == nil {
		writeError(w, http.StatusNotFound, "watchlist disabled")
		return
	}
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	added, err := h.Watchlist.Add(req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !added {
		writeError(w, http.StatusConflict, "name is empty or already tracked")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (h *Handlers) UntrackProduct(w http.ResponseWriter, r *http.Request) {
	if h.Watchlist == nil {
		writeError(w, http.StatusNotFound, "watchlist disabled")
		return
	}
	removed, err := h.Watchlist.Remove(mux.Vars(r)["name"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not tracked")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
