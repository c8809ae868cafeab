//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

// Package live implements the client side of a live session: it normalizes
// heterogeneous caller input into the three canonical wire envelopes and
// writes one JSON message per call over an open connection.
//
// A session performs no authentication, reconnection, or server-event
// processing. It is constructed over an already-established
// transport.Connection and owns only the framing of outbound traffic.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/genlive/genlive-go/log"
	"github.com/genlive/genlive-go/transport"
	"github.com/genlive/genlive-go/types"
)

var (
	// ErrSessionClosed is returned by send and receive operations after
	// Close.
	ErrSessionClosed = errors.New("session is closed")
	// ErrUnsupportedInput is returned when an input value cannot be
	// normalized into any wire envelope. Nothing is written in that case.
	ErrUnsupportedInput = errors.New("unsupported input")
)

var tracer = otel.Tracer("github.com/genlive/genlive-go/live")

// Session is a live session over an open connection. Each send operation
// normalizes its input, frames exactly one wire message, and writes it;
// messages go out in call order.
type Session struct {
	conn                  transport.Connection
	backend               types.Backend
	id                    string
	chunkSize             int
	clientMessageCallback ClientMessageCallbackFunc

	sendMu sync.Mutex
	closed atomic.Bool
}

// NewSession creates a session over conn. The connection is owned by the
// session from this point on: Close closes it.
func NewSession(conn transport.Connection, opts ...Option) *Session {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		conn:                  conn,
		backend:               o.backend,
		id:                    uuid.NewString(),
		chunkSize:             o.chunkSize,
		clientMessageCallback: o.clientMessageCallback,
	}
}

// ID returns the client-generated session identifier used in logs and
// trace spans.
func (s *Session) ID() string {
	return s.id
}

// SendClientContent sends whole conversation turns as a client_content
// envelope. Accepted input shapes: string, Content (value, pointer, or
// slice), Part and media values, ClientContent, maps keyed like any of
// those, and lists thereof.
func (s *Session) SendClientContent(ctx context.Context, input any) error {
	cc, err := toClientContent(input)
	if err != nil {
		return err
	}
	return s.sendMessage(ctx, &types.ClientMessage{ClientContent: cc})
}

// SendRealtimeInput sends media chunks as a realtime_input envelope.
// Accepted input shapes: Blob (value, pointer, or slice), image.Image,
// RealtimeInput, blob-shaped maps, and lists thereof.
func (s *Session) SendRealtimeInput(ctx context.Context, input any) error {
	ri, err := toRealtimeInput(input)
	if err != nil {
		return err
	}
	return s.sendMessage(ctx, &types.ClientMessage{RealtimeInput: ri})
}

// SendToolResponse sends function results as a tool_response envelope.
// Accepted input shapes: FunctionResponse (value, pointer, or slice),
// ToolResponse, maps keyed like either, and lists thereof.
func (s *Session) SendToolResponse(ctx context.Context, input any) error {
	tr, err := toToolResponse(input)
	if err != nil {
		return err
	}
	if err := s.validateToolResponse(tr); err != nil {
		return err
	}
	return s.sendMessage(ctx, &types.ClientMessage{ToolResponse: tr})
}

// Send dispatches input to the envelope its shape implies: strings, turns,
// and parts become client_content, media becomes realtime_input, function
// results become tool_response. endOfTurn marks the content turn finished;
// it is consulted only on the client_content path and never clears a
// turn_complete the input itself carries. Mixed-kind lists are an error.
func (s *Session) Send(ctx context.Context, input any, endOfTurn bool) error {
	kind, err := classify(input)
	if err != nil {
		return err
	}
	switch kind {
	case types.KindRealtimeInput:
		return s.SendRealtimeInput(ctx, input)
	case types.KindToolResponse:
		return s.SendToolResponse(ctx, input)
	default:
		cc, err := toClientContent(input)
		if err != nil {
			return err
		}
		if endOfTurn {
			// Copy so a caller-owned envelope is never written through.
			c := *cc
			c.TurnComplete = true
			cc = &c
		}
		return s.sendMessage(ctx, &types.ClientMessage{ClientContent: cc})
	}
}

// Receive blocks until one server message arrives and decodes it. No
// further interpretation of the message is performed.
func (s *Session) Receive(ctx context.Context) (*types.ServerMessage, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	data, err := s.conn.Receive(ctx)
	if err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}
	var msg types.ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode server message: %w", err)
	}
	return &msg, nil
}

// Close closes the underlying connection. It is safe to call more than
// once.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	log.Debugf("live session %s: closing", s.id)
	return s.conn.Close()
}

// validateToolResponse enforces the backend split on function response
// ids: the API-key backend requires them, Vertex does not support them.
func (s *Session) validateToolResponse(tr *types.ToolResponse) error {
	for i, fr := range tr.FunctionResponses {
		if fr == nil {
			return fmt.Errorf("%w: function response %d is nil", ErrUnsupportedInput, i)
		}
		switch s.backend {
		case types.BackendVertexAI:
			if fr.ID != "" {
				return fmt.Errorf("function response %q: id is not supported by the %s backend",
					fr.Name, s.backend)
			}
		default:
			if fr.ID == "" {
				return fmt.Errorf("function response %q: id is required by the %s backend",
					fr.Name, s.backend)
			}
		}
	}
	return nil
}

// sendMessage frames and writes one client message. Writes are serialized
// so messages leave in call order.
func (s *Session) sendMessage(ctx context.Context, msg *types.ClientMessage) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	ctx, span := tracer.Start(ctx, "live.send", trace.WithAttributes(
		attribute.String("live.session_id", s.id),
		attribute.String("live.envelope", msg.Kind()),
	))
	defer span.End()

	if s.clientMessageCallback != nil {
		s.clientMessageCallback(ctx, msg)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msg.Kind(), err)
	}
	span.SetAttributes(attribute.Int("live.payload_bytes", len(data)))

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := s.conn.Send(ctx, data); err != nil {
		return fmt.Errorf("send %s: %w", msg.Kind(), err)
	}
	log.Debugf("live session %s: sent %s (%d bytes)", s.id, msg.Kind(), len(data))
	return nil
}
