package controllers

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"alertd/internal/connection"
	"alertd/internal/providers"
	"alertd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.AlertServiceInterface
	conn    connection.ManagerInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.AlertServiceInterface, conn connection.ManagerInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		conn:    conn,
		cache:   cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetAlerts returns the history, newest first. The cache key carries the
// mutation generation so a stale entry can never outlive a mutation.
func (ac *ApiController) GetAlerts(w http.ResponseWriter, r *http.Request) {
	key := fmt.Sprintf("alerts:%d", ac.service.Generation())
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.service.History(), nil
	})
}

func (ac *ApiController) GetUnread(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"unread": ac.service.UnreadCount()})
}

func (ac *ApiController) GetScores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ac.conn.LatestScores())
}

type statusResponse struct {
	State       string `json:"state"`
	HistorySize int    `json:"history_size"`
	Unread      int    `json:"unread"`
	Today       int    `json:"today"`
}

func (ac *ApiController) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, statusResponse{
		State:       ac.conn.State().String(),
		HistorySize: ac.service.HistorySize(),
		Unread:      ac.service.UnreadCount(),
		Today:       ac.service.TodayCount(),
	})
}

type idPayload struct {
	ID string `json:"id"`
}

func (ac *ApiController) decodeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload idPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return "", false
	}
	return payload.ID, true
}

// MarkRead flips a record to read. A miss on the id is a no-op, not an
// error.
func (ac *ApiController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := ac.decodeID(w, r)
	if !ok {
		return
	}
	ac.service.MarkRead(id)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) MarkUnread(w http.ResponseWriter, r *http.Request) {
	id, ok := ac.decodeID(w, r)
	if !ok {
		return
	}
	ac.service.MarkUnread(id)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ac.service.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := ac.decodeID(w, r)
	if !ok {
		return
	}
	ac.service.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ac.service.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
