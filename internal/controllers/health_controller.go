package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"alertd/internal/connection"
	"alertd/internal/services"
)

type HealthController struct {
	service   services.AlertServiceInterface
	conn      connection.ManagerInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Connection    string  `json:"connection"`
	HistorySize   int     `json:"history_size"`
	Unread        int     `json:"unread"`
	Today         int     `json:"today"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Connection:    hc.conn.State().String(),
		HistorySize:   hc.service.HistorySize(),
		Unread:        hc.service.UnreadCount(),
		Today:         hc.service.TodayCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.AlertServiceInterface, conn connection.ManagerInterface) *HealthController {
	return &HealthController{
		service:   service,
		conn:      conn,
		startTime: time.Now(),
	}
}
