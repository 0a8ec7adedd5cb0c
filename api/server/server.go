// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package server exposes the status endpoints of a long generation run:
// prometheus metrics and a liveness probe. The server is optional; batch
// runs with no port configured never bind a socket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

const (
	metricsEndpoint = "/metrics"
	healthEndpoint  = "/healthz"

	readHeaderTimeout = time.Second
	shutdownTimeout   = 5 * time.Second
)

type Server struct {
	log      logging.Logger
	registry *prometheus.Registry
	srv      http.Server

	addr    string
	started time.Time
}

// New builds a status server for the given registry. The listen address is
// host:port form; an empty host binds every interface.
func New(addr string, registry *prometheus.Registry, log logging.Logger) *Server {
	return &Server{
		log:      log,
		registry: registry,
		addr:     addr,
	}
}

// Addr returns the bound listen address. Only valid after Start.
func (s *Server) Addr() string {
	return s.addr
}

// Start binds the listener and serves in the background. The returned
// channel reports a serve failure; a clean Stop never writes to it.
func (s *Server) Start() (<-chan error, error) {
	router := mux.NewRouter()
	router.Handle(metricsEndpoint, promhttp.InstrumentMetricHandler(
		s.registry,
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}),
	)).Methods(http.MethodGet)
	router.HandleFunc(healthEndpoint, s.healthz).Methods(http.MethodGet)

	handler := cors.Default().Handler(router)

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, err
	}
	s.addr = listener.Addr().String()
	s.started = time.Now()

	s.srv = http.Server{
		Addr:              s.addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	runError := make(chan error, 1)
	go func() {
		err := s.srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		runError <- err
	}()

	s.log.Info("status server listening",
		zap.String("metrics", fmt.Sprintf("http://%s%s", s.addr, metricsEndpoint)),
		zap.String("health", fmt.Sprintf("http://%s%s", s.addr, healthEndpoint)),
	)
	return runError, nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Healthy bool    `json:"healthy"`
		Uptime  float64 `json:"uptimeSeconds"`
	}{
		Healthy: true,
		Uptime:  time.Since(s.started).Seconds(),
	})
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
