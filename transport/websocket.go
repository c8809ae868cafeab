//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultHandshakeTimeout = 10 * time.Second

// WSConnection is a Connection backed by a gorilla WebSocket client
// connection. Reads and writes are each serialized internally because
// gorilla permits at most one concurrent reader and one concurrent writer.
type WSConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	readMu  sync.Mutex
}

var _ Connection = (*WSConnection)(nil)

// Dial opens a WebSocket connection to the given URL. It performs no
// authentication or setup exchange; callers own the handshake that their
// endpoint requires.
func Dial(ctx context.Context, rawURL string, header http.Header) (*WSConnection, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: defaultHandshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, rawURL, header)
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", rawURL, err)
	}
	return NewWSConnection(conn), nil
}

// NewWSConnection wraps an already-established gorilla connection.
func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

// Send writes one text message. A context deadline, when present, bounds
// the write.
func (c *WSConnection) Send(ctx context.Context, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

// Receive blocks until one message arrives. A context deadline, when
// present, bounds the read.
func (c *WSConnection) Receive(ctx context.Context) ([]byte, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	deadline, _ := ctx.Deadline()
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("websocket read: %w", err)
	}
	return data, nil
}

// Close sends a best-effort close frame and tears down the connection.
func (c *WSConnection) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}
