package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"skirmish/communication"
)

// EnvironmentServer exposes an Environment over HTTP so remote controllers
// can play against it.
type EnvironmentServer struct {
	env   communication.Environment
	mutex sync.Mutex
}

// NewEnvironmentServer initializes and returns a new EnvironmentServer.
func NewEnvironmentServer(env communication.Environment) *EnvironmentServer {
	return &EnvironmentServer{env: env}
}

func (s *EnvironmentServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.HandleFunc("POST /commands", s.handleCommands)
	return mux
}

// Start serves on addr until the listener fails.
func (s *EnvironmentServer) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("environment server listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *EnvironmentServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	snapshot, err := s.env.Snapshot(r.Context())
	s.mutex.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Warn().Err(err).Msg("failed to encode snapshot")
	}
}

func (s *EnvironmentServer) handleCommands(w http.ResponseWriter, r *http.Request) {
	var list []communication.Command
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	commands := make(map[int]communication.Command, len(list))
	for _, command := range list {
		commands[command.UnitID] = command
	}

	s.mutex.Lock()
	err := s.env.Submit(r.Context(), commands)
	s.mutex.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
