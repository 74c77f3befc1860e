// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statsrv pushes [rstate.CacheStats] and config page reload
// events to connected devtools clients over a websocket, modeled on
// the original's _cache_stats/maybe_report diagnostics but exposed live instead of only through a log line.
package statsrv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pandacore.dev/engine/prc"
	"pandacore.dev/engine/rstate"
)

// Server broadcasts periodic cache-stats snapshots and page-reload
// notifications to every connected client.
type Server struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	interval time.Duration
	stop     chan struct{}
}

// New returns a Server that samples [rstate.Stats] every interval.
func New(interval time.Duration) *Server {
	return &Server{
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		clients:  map[*websocket.Conn]struct{}{},
		interval: interval,
	}
}

// message is the envelope every broadcast frame uses.
type message struct {
	Kind  string             `json:"kind"`
	Stats *rstate.CacheStats `json:"stats,omitempty"`
	Pages int                `json:"pages,omitempty"`
}

// ServeHTTP upgrades the connection to a websocket and registers it for
// broadcasts until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("statsrv: upgrade failed", "err", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Start begins the periodic broadcast loop. It returns immediately;
// call Stop to end it.
func (s *Server) Start() {
	s.stop = make(chan struct{})
	go s.loop(s.stop)
}

// Stop ends the broadcast loop started by Start.
func (s *Server) Stop() {
	if s.stop != nil {
		close(s.stop)
	}
}

func (s *Server) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	lastPages := -1
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			stats := rstate.Stats()
			s.broadcast(message{Kind: "stats", Stats: &stats})

			pages := prc.Default.NumPages()
			if pages != lastPages {
				s.broadcast(message{Kind: "pages_reloaded", Pages: pages})
				lastPages = pages
			}
		}
	}
}

func (s *Server) broadcast(m message) {
	data, err := json.Marshal(m)
	if err != nil {
		slog.Warn("statsrv: marshal failed", "err", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}
