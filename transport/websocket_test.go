//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
		http.Error(w, reason.Error(), status)
	},
}

func makeWsProto(s string) string {
	return "ws" + strings.TrimPrefix(s, "http")
}

// echoServer upgrades each request and echoes every text frame back.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade: %v", err)
			return
		}
		defer ws.Close()
		for {
			mt, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if err := ws.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDialSendReceive(t *testing.T) {
	srv := echoServer(t)

	conn, err := Dial(context.Background(), makeWsProto(srv.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	require.NoError(t, conn.Send(ctx, []byte(`{"client_content":{}}`)))

	data, err := conn.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"client_content":{}}`, string(data))
}

func TestDialBadURL(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "websocket dial")
}

func TestConcurrentSends(t *testing.T) {
	srv := echoServer(t)

	conn, err := Dial(context.Background(), makeWsProto(srv.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, conn.Send(context.Background(), []byte("chunk")))
		}()
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for i := 0; i < n; i++ {
		data, err := conn.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "chunk", string(data))
	}
}

func TestConcurrentReceives(t *testing.T) {
	srv := echoServer(t)

	conn, err := Dial(context.Background(), makeWsProto(srv.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	const n = 16
	for i := 0; i < n; i++ {
		require.NoError(t, conn.Send(context.Background(), []byte("chunk")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := conn.Receive(ctx)
			if assert.NoError(t, err) {
				assert.Equal(t, "chunk", string(data))
			}
		}()
	}
	wg.Wait()
}

func TestReceiveDeadline(t *testing.T) {
	// Server keeps the connection open but never writes.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	conn, err := Dial(context.Background(), makeWsProto(srv.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = conn.Receive(ctx)
	require.Error(t, err)
}

func TestCloseStopsConnection(t *testing.T) {
	srv := echoServer(t)

	conn, err := Dial(context.Background(), makeWsProto(srv.URL), nil)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	err = conn.Send(context.Background(), []byte("after close"))
	require.Error(t, err)
}
