//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package types

// Backend selects which service backend a session talks to. The two
// backends disagree on small protocol details such as FunctionResponse ids.
type Backend int

const (
	// BackendGeminiAPI is the API-key backed endpoint.
	BackendGeminiAPI Backend = iota
	// BackendVertexAI is the Vertex AI endpoint.
	BackendVertexAI
)

// String implements fmt.Stringer.
func (b Backend) String() string {
	switch b {
	case BackendVertexAI:
		return "vertexai"
	default:
		return "geminiapi"
	}
}

// ClientContent is a content-turn envelope payload: whole turns appended to
// the conversation, optionally marking the user turn as finished.
type ClientContent struct {
	Turns        []*Content `json:"turns,omitempty"`
	TurnComplete bool       `json:"turn_complete,omitempty"`
}

// RealtimeInput is a realtime media envelope payload: chunks delivered as
// they are captured, outside turn boundaries.
type RealtimeInput struct {
	MediaChunks []*Blob `json:"media_chunks,omitempty"`
}

// ToolResponse is a tool-response envelope payload answering one or more
// function calls issued by the model.
type ToolResponse struct {
	FunctionResponses []*FunctionResponse `json:"function_responses,omitempty"`
}

// ClientMessage is the outbound wire union. Exactly one field is set per
// message.
type ClientMessage struct {
	ClientContent *ClientContent `json:"client_content,omitempty"`
	RealtimeInput *RealtimeInput `json:"realtime_input,omitempty"`
	ToolResponse  *ToolResponse  `json:"tool_response,omitempty"`
}

// Envelope kind names as they appear on the wire.
const (
	KindClientContent = "client_content"
	KindRealtimeInput = "realtime_input"
	KindToolResponse  = "tool_response"
)

// Kind reports which envelope the message carries.
func (m *ClientMessage) Kind() string {
	switch {
	case m.ClientContent != nil:
		return KindClientContent
	case m.RealtimeInput != nil:
		return KindRealtimeInput
	case m.ToolResponse != nil:
		return KindToolResponse
	}
	return "unknown"
}

// SetupComplete acknowledges session setup. It carries no fields.
type SetupComplete struct{}

// ServerContent is streamed model output. The service emits camelCase keys
// on the inbound path.
type ServerContent struct {
	ModelTurn    *Content `json:"modelTurn,omitempty"`
	TurnComplete bool     `json:"turnComplete,omitempty"`
	Interrupted  bool     `json:"interrupted,omitempty"`
}

// ToolCall asks the client to run one or more functions.
type ToolCall struct {
	FunctionCalls []*FunctionCall `json:"functionCalls,omitempty"`
}

// ServerMessage is the inbound wire union, decoded as-is. Interpreting the
// events beyond this struct is up to the caller.
type ServerMessage struct {
	SetupComplete *SetupComplete `json:"setupComplete,omitempty"`
	ServerContent *ServerContent `json:"serverContent,omitempty"`
	ToolCall      *ToolCall      `json:"toolCall,omitempty"`
}
