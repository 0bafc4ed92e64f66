package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"linkwatch/internal/logger"
	"linkwatch/internal/models"
)

type statusResponse struct {
	Latest *models.StatusRecord `json:"latest"`
	Counts models.StatusCounts  `json:"counts"`
	Range  string               `json:"range"`
}

// rangeSince maps the dashboard's range selector onto a cutoff time.
// A zero return means no cutoff.
func rangeSince(value string, now time.Time) (time.Time, string) {
	switch value {
	case "", "12h":
		return now.Add(-12 * time.Hour), "12h"
	case "24h":
		return now.Add(-24 * time.Hour), "24h"
	case "48h":
		return now.Add(-48 * time.Hour), "48h"
	case "7d":
		return now.AddDate(0, 0, -7), "7d"
	case "all":
		return time.Time{}, "all"
	default:
		return now.Add(-12 * time.Hour), "12h"
	}
}

// handleStatus handles /api/status requests
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	since, label := rangeSince(r.URL.Query().Get("range"), time.Now())

	latest, err := s.db.Latest(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	counts, err := s.db.StatusCounts(r.Context(), since)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{
		Latest: latest,
		Counts: counts,
		Range:  label,
	})
}

// handleRecords handles /api/records requests
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	since, _ := rangeSince(r.URL.Query().Get("range"), time.Now())

	records, err := s.db.Recent(r.Context(), since)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.StatusRecord{}
	}

	s.writeJSON(w, http.StatusOK, records)
}

// handlePowerCycle handles the dashboard's manual power-cycle button.
// The cooldown check answers synchronously; the cycle itself runs in the
// background because it outlasts any reasonable response deadline, and a
// client disconnect must not kill the command between plug-off and plug-on.
func (s *Server) handlePowerCycle(w http.ResponseWriter, r *http.Request) {
	s.log.Info("manual power cycle requested", "remote", r.RemoteAddr)

	if remaining := s.escalator.CooldownRemaining(); remaining > 0 {
		s.writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error": fmt.Sprintf("power cycle cooldown active, %s remaining", remaining.Round(time.Second)),
		})
		return
	}

	s.cycleMu.Lock()
	if s.cycling {
		s.cycleMu.Unlock()
		s.writeJSON(w, http.StatusConflict, map[string]string{
			"error": "power cycle already in progress",
		})
		return
	}
	s.cycling = true
	s.cycleMu.Unlock()

	go func() {
		defer func() {
			s.cycleMu.Lock()
			s.cycling = false
			s.cycleMu.Unlock()
		}()
		if err := s.escalator.ManualCycle(context.Background()); err != nil {
			s.log.Error("manual power cycle failed", logger.Err(err))
		}
	}()

	s.writeJSON(w, http.StatusAccepted, map[string]string{
		"accepted_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", logger.Err(err))
	}
}
