//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

// Package types defines the wire schema shared by the live session API.
//
// The JSON field names and their casing are fixed by the remote service and
// reproduced here byte-for-byte: envelope-level keys are snake_case, the
// part-level union keys are camelCase, and the leaf keys inside media parts
// are snake_case again. Binary payloads travel as standard base64, which is
// what encoding/json emits for []byte.
package types

// Content is a single conversation turn: an ordered list of parts plus the
// role that produced them.
type Content struct {
	// Parts holds the ordered pieces that make up the turn.
	Parts []*Part `json:"parts,omitempty"`
	// Role identifies the producer of the content ("user" or "model").
	Role string `json:"role,omitempty"`
}

// Part is one piece of a turn. Exactly one field should be set.
type Part struct {
	// Text is inline plain text.
	Text string `json:"text,omitempty"`
	// InlineData is raw media carried inside the message.
	InlineData *Blob `json:"inlineData,omitempty"`
	// FileData is a reference to media uploaded out of band.
	FileData *FileData `json:"fileData,omitempty"`
}

// Blob is a binary payload with its media type. Data is base64-encoded on
// the wire.
type Blob struct {
	Data     []byte `json:"data,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

// FileData references previously uploaded media by URI.
type FileData struct {
	FileURI  string `json:"file_uri,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	// ID pairs the call with its response on backends that support it.
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name,omitempty"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse is the caller-supplied result of a function call.
type FunctionResponse struct {
	// ID echoes the id of the FunctionCall being answered. Required on the
	// API-key backend, unsupported on Vertex.
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Response map[string]any `json:"response,omitempty"`
}

// RoleUser and RoleModel are the two roles the service understands.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// NewPartFromText returns a text part.
func NewPartFromText(text string) *Part {
	return &Part{Text: text}
}

// NewPartFromBytes returns an inline-data part carrying the given bytes.
func NewPartFromBytes(data []byte, mimeType string) *Part {
	return &Part{InlineData: &Blob{Data: data, MIMEType: mimeType}}
}

// NewPartFromURI returns a file-data part referencing uploaded media.
func NewPartFromURI(uri, mimeType string) *Part {
	return &Part{FileData: &FileData{FileURI: uri, MIMEType: mimeType}}
}

// NewContentFromParts assembles a turn from parts with the given role.
func NewContentFromParts(role string, parts ...*Part) *Content {
	return &Content{Role: role, Parts: parts}
}

// NewContentFromText returns a single-part text turn with the given role.
func NewContentFromText(text, role string) *Content {
	return &Content{Role: role, Parts: []*Part{NewPartFromText(text)}}
}

// NewUserContent assembles a user turn from parts.
func NewUserContent(parts ...*Part) *Content {
	return &Content{Role: RoleUser, Parts: parts}
}
