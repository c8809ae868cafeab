//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package live

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genlive/genlive-go/types"
)

func TestSendRealtimeInputTypedBlob(t *testing.T) {
	s, conn := newTestSession()
	input := &types.Blob{Data: make([]byte, 6), MIMEType: "audio/pcm"}
	require.NoError(t, s.SendRealtimeInput(context.Background(), input))

	assert.JSONEq(t,
		`{"realtime_input": {"media_chunks": [{"data": "AAAAAAAA", "mime_type": "audio/pcm"}]}}`,
		string(onlyFrame(t, conn)))
}

func TestSendRealtimeInputBlobMap(t *testing.T) {
	s, conn := newTestSession()
	input := map[string]any{
		"data":      make([]byte, 6),
		"mime_type": "audio/pcm",
	}
	require.NoError(t, s.SendRealtimeInput(context.Background(), input))

	assert.JSONEq(t,
		`{"realtime_input": {"media_chunks": [{"data": "AAAAAAAA", "mime_type": "audio/pcm"}]}}`,
		string(onlyFrame(t, conn)))
}

// The same chunk spelled with raw bytes, a base64 string, or a camelCase
// key must all serialize identically.
func TestSendRealtimeInputEquivalentBlobSpellings(t *testing.T) {
	inputs := map[string]any{
		"raw bytes":     map[string]any{"data": make([]byte, 6), "mime_type": "audio/pcm"},
		"base64 string": map[string]any{"data": "AAAAAAAA", "mime_type": "audio/pcm"},
		"camel case":    map[string]any{"data": make([]byte, 6), "mimeType": "audio/pcm"},
		"typed":         &types.Blob{Data: make([]byte, 6), MIMEType: "audio/pcm"},
	}

	want := `{"realtime_input": {"media_chunks": [{"data": "AAAAAAAA", "mime_type": "audio/pcm"}]}}`
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			s, conn := newTestSession()
			require.NoError(t, s.SendRealtimeInput(context.Background(), input))
			assert.JSONEq(t, want, string(onlyFrame(t, conn)))
		})
	}
}

func TestSendRealtimeInputMixedList(t *testing.T) {
	s, conn := newTestSession()
	input := []any{
		&types.Blob{Data: []byte{1}, MIMEType: "audio/pcm"},
		map[string]any{"data": []byte{2}, "mime_type": "audio/opus"},
		&types.Blob{Data: []byte{3}, MIMEType: "audio/pcm"},
	}
	require.NoError(t, s.SendRealtimeInput(context.Background(), input))

	frame := decodeFrame(t, onlyFrame(t, conn))
	chunks := frame["realtime_input"].(map[string]any)["media_chunks"].([]any)
	require.Len(t, chunks, 3)
	assert.Equal(t, "audio/pcm", chunks[0].(map[string]any)["mime_type"])
	assert.Equal(t, "audio/opus", chunks[1].(map[string]any)["mime_type"])
	assert.Equal(t, "audio/pcm", chunks[2].(map[string]any)["mime_type"])
	assert.Equal(t, "AQ==", chunks[0].(map[string]any)["data"])
	assert.Equal(t, "Ag==", chunks[1].(map[string]any)["data"])
	assert.Equal(t, "Aw==", chunks[2].(map[string]any)["data"])
}

func TestSendRealtimeInputEnvelopeMap(t *testing.T) {
	s, conn := newTestSession()
	input := map[string]any{
		"media_chunks": []any{
			map[string]any{"data": make([]byte, 6), "mime_type": "audio/pcm"},
		},
	}
	require.NoError(t, s.SendRealtimeInput(context.Background(), input))

	assert.JSONEq(t,
		`{"realtime_input": {"media_chunks": [{"data": "AAAAAAAA", "mime_type": "audio/pcm"}]}}`,
		string(onlyFrame(t, conn)))
}

func TestSendRealtimeInputTypedEnvelope(t *testing.T) {
	s, conn := newTestSession()
	input := &types.RealtimeInput{
		MediaChunks: []*types.Blob{{Data: make([]byte, 6), MIMEType: "audio/pcm"}},
	}
	require.NoError(t, s.SendRealtimeInput(context.Background(), input))

	assert.JSONEq(t,
		`{"realtime_input": {"media_chunks": [{"data": "AAAAAAAA", "mime_type": "audio/pcm"}]}}`,
		string(onlyFrame(t, conn)))
}

func TestSendRealtimeInputImage(t *testing.T) {
	s, conn := newTestSession()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	require.NoError(t, s.SendRealtimeInput(context.Background(), img))

	frame := decodeFrame(t, onlyFrame(t, conn))
	chunks := frame["realtime_input"].(map[string]any)["media_chunks"].([]any)
	require.Len(t, chunks, 1)
	chunk := chunks[0].(map[string]any)
	assert.Equal(t, "image/jpeg", chunk["mime_type"])
	assert.NotEmpty(t, chunk["data"])
}

func TestSendRealtimeInputRejectsNonMedia(t *testing.T) {
	s, conn := newTestSession()

	err := s.SendRealtimeInput(context.Background(), "not media")
	require.ErrorIs(t, err, ErrUnsupportedInput)

	err = s.SendRealtimeInput(context.Background(), []any{
		&types.Blob{Data: []byte{1}, MIMEType: "audio/pcm"},
		"not media",
	})
	require.ErrorIs(t, err, ErrUnsupportedInput)
	assert.Contains(t, err.Error(), "media chunk 1")
	assert.Empty(t, conn.frames())
}
