// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statsrv

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerBroadcastsStatsToConnectedClient(t *testing.T) {
	srv := New(10 * time.Millisecond)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	srv.Start()
	defer srv.Stop()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var m message
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "stats", m.Kind)
	assert.NotNil(t, m.Stats)
}

func TestServerDropsClientOnDisconnect(t *testing.T) {
	srv := New(time.Hour)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	// Give ServeHTTP's goroutine a moment to register the client.
	time.Sleep(20 * time.Millisecond)
	srv.mu.Lock()
	n := len(srv.clients)
	srv.mu.Unlock()
	assert.Equal(t, 1, n)

	conn.Close()
	time.Sleep(20 * time.Millisecond)
	srv.mu.Lock()
	n = len(srv.clients)
	srv.mu.Unlock()
	assert.Equal(t, 0, n)
}
