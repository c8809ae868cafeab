//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package live

import (
	"context"

	"github.com/genlive/genlive-go/types"
)

const defaultChunkSize = 8 * 1024

// ClientMessageCallbackFunc is called with each outbound message just
// before it is written.
type ClientMessageCallbackFunc func(ctx context.Context, msg *types.ClientMessage)

// options contains configuration options for creating a session.
type options struct {
	// Backend the session talks to.
	backend types.Backend
	// Chunk size used by StartStream, 8 KiB by default.
	chunkSize int
	// Callback for outbound client messages.
	clientMessageCallback ClientMessageCallbackFunc
}

var defaultOptions = options{
	backend:   types.BackendGeminiAPI,
	chunkSize: defaultChunkSize,
}

// Option is a function that configures a session.
type Option func(*options)

// WithBackend selects the service backend, BackendGeminiAPI by default.
func WithBackend(backend types.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithChunkSize sets the read size StartStream uses, 8 KiB by default.
func WithChunkSize(size int) Option {
	return func(o *options) {
		if size <= 0 {
			size = defaultChunkSize
		}
		o.chunkSize = size
	}
}

// WithClientMessageCallback sets the function to be called before each
// outbound message is written.
func WithClientMessageCallback(fn ClientMessageCallbackFunc) Option {
	return func(o *options) {
		o.clientMessageCallback = fn
	}
}
