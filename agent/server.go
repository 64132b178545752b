package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"skirmish/communication"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_agent_decisions_total",
		Help: "Turns planned by outcome",
	}, []string{"outcome"})

	droppedAttacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skirmish_agent_dropped_attacks_total",
		Help: "Attacks left without a command because no target was adjacent",
	})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skirmish_agent_search_duration_seconds",
		Help:    "Search duration per turn in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	})

	searchExpansions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skirmish_agent_search_expansions",
		Help:    "Expanded nodes per turn",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// Server exposes an Agent over HTTP.
type Server struct {
	agent Agent
}

func NewServer(agent Agent) *Server {
	return &Server{agent: agent}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /decide", s.handleDecide)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves the agent on addr until the listener fails.
func (s *Server) Start(addr string) error {
	log.Info().Msgf("Starting agent server on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var snapshot communication.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		decisionsTotal.WithLabelValues("error").Inc()
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	decision, err := s.agent.FindMove(snapshot)
	if err != nil {
		decisionsTotal.WithLabelValues("error").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidSnapshot) || errors.Is(err, ErrNoTarget) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	observe(decision)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(decision); err != nil {
		log.Error().Err(err).Msg("Failed to encode decision")
	}
}

func observe(decision Decision) {
	if decision.Idle {
		decisionsTotal.WithLabelValues("idle").Inc()
	} else {
		decisionsTotal.WithLabelValues("move").Inc()
	}
	droppedAttacksTotal.Add(float64(len(decision.Dropped)))
	searchDuration.Observe(decision.Metric.Duration.Seconds())
	searchExpansions.Observe(float64(decision.Metric.Expansions))
}
