package web

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
)

// Settings is the runtime-mutable subset of the configuration exposed to
// operators. Everything else requires a restart.
type Settings struct {
	ServerHost       string  `json:"server_host"`
	ServerPort       int     `json:"server_port"`
	MachineID        string  `json:"machine_id"`
	SamplingInterval float64 `json:"sampling_interval"`
	Simulation       bool    `json:"simulation"`
}

func settingsFrom(cfg *config.Config) Settings {
	return Settings{
		ServerHost:       cfg.Server.Host,
		ServerPort:       cfg.Server.Port,
		MachineID:        cfg.MachineID,
		SamplingInterval: cfg.SamplingInterval.Seconds(),
		Simulation:       cfg.Simulation,
	}
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, settingsFrom(s.deps.Config.Snapshot()))
	case http.MethodPut:
		s.updateSettings(w, r)
	default:
		methodNotAllowed(w)
	}
}

// updateSettings validates the submitted settings against a full copy of
// the configuration and swaps the copy in wholesale on success. A rejected
// update leaves the prior configuration active.
func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dup := s.deps.Config.Copy()
	dup.Server.Host = req.ServerHost
	dup.Server.Port = req.ServerPort
	dup.MachineID = req.MachineID
	dup.SamplingInterval = config.Seconds{Duration: time.Duration(req.SamplingInterval * float64(time.Second))}
	dup.Simulation = req.Simulation

	if err := dup.Validate(); err != nil {
		s.deps.Logger.Warn("Rejected settings update", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.deps.Config.Swap(dup)
	if s.deps.ConfigPath != "" {
		if err := config.Write(dup, s.deps.ConfigPath); err != nil {
			s.deps.Logger.Error("Failed to persist settings", zap.Error(err))
		}
	}

	s.deps.Logger.Info("Settings updated",
		zap.String("server_host", dup.Server.Host),
		zap.Int("server_port", dup.Server.Port),
		zap.String("machine_id", dup.MachineID),
		zap.Float64("sampling_interval", dup.SamplingInterval.Seconds()),
		zap.Bool("simulation", dup.Simulation))

	writeJSON(w, http.StatusOK, settingsFrom(dup))
}
