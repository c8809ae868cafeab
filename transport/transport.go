//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

// Package transport abstracts the bidirectional connection a live session
// writes to. The session layer depends only on the Connection interface;
// the WebSocket implementation lives alongside it.
package transport

import "context"

// Connection is a bidirectional message transport. Implementations must
// support concurrent Send calls and concurrent Receive calls; the session
// layer additionally serializes its own writes to preserve call order.
type Connection interface {
	// Send writes one outbound message.
	Send(ctx context.Context, data []byte) error
	// Receive blocks until one inbound message arrives.
	Receive(ctx context.Context) ([]byte, error)
	// Close terminates the connection. The connection must not be used
	// after this call.
	Close() error
}
