//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package live

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/genlive/genlive-go/types"
)

// toClientContent coerces any accepted content-turn input shape into a
// ClientContent envelope payload. Input order is preserved in Turns.
func toClientContent(input any) (*types.ClientContent, error) {
	switch v := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil client content", ErrUnsupportedInput)
	case types.ClientContent:
		return &v, nil
	case *types.ClientContent:
		if v == nil {
			return nil, fmt.Errorf("%w: nil client content", ErrUnsupportedInput)
		}
		return v, nil
	case string:
		return &types.ClientContent{
			Turns: []*types.Content{types.NewContentFromText(v, types.RoleUser)},
		}, nil
	case types.Content:
		c := v
		return &types.ClientContent{Turns: []*types.Content{&c}}, nil
	case *types.Content:
		return &types.ClientContent{Turns: []*types.Content{v}}, nil
	case []*types.Content:
		return &types.ClientContent{Turns: v}, nil
	case []types.Content:
		turns := make([]*types.Content, len(v))
		for i := range v {
			turns[i] = &v[i]
		}
		return &types.ClientContent{Turns: turns}, nil
	case []*types.Part:
		return &types.ClientContent{Turns: []*types.Content{types.NewUserContent(v...)}}, nil
	case []types.Part:
		parts := make([]*types.Part, len(v))
		for i := range v {
			parts[i] = &v[i]
		}
		return &types.ClientContent{Turns: []*types.Content{types.NewUserContent(parts...)}}, nil
	case map[string]any:
		switch {
		case hasKey(v, "turns", "turn_complete"):
			var cc types.ClientContent
			if err := decodeMap(v, &cc); err != nil {
				return nil, err
			}
			return &cc, nil
		case hasKey(v, "parts", "role"):
			var c types.Content
			if err := decodeMap(v, &c); err != nil {
				return nil, err
			}
			return &types.ClientContent{Turns: []*types.Content{&c}}, nil
		default:
			part, err := toPart(v)
			if err != nil {
				return nil, err
			}
			return &types.ClientContent{Turns: []*types.Content{types.NewUserContent(part)}}, nil
		}
	case []any:
		turns := make([]*types.Content, 0, len(v))
		for i, elem := range v {
			turn, err := toTurn(elem)
			if err != nil {
				return nil, fmt.Errorf("turn %d: %w", i, err)
			}
			turns = append(turns, turn)
		}
		return &types.ClientContent{Turns: turns}, nil
	case []map[string]any:
		turns := make([]*types.Content, 0, len(v))
		for i, elem := range v {
			turn, err := toTurn(elem)
			if err != nil {
				return nil, fmt.Errorf("turn %d: %w", i, err)
			}
			turns = append(turns, turn)
		}
		return &types.ClientContent{Turns: turns}, nil
	default:
		part, err := toPart(input)
		if err != nil {
			return nil, err
		}
		return &types.ClientContent{Turns: []*types.Content{types.NewUserContent(part)}}, nil
	}
}

// toTurn coerces one element of a list input into a single turn.
func toTurn(elem any) (*types.Content, error) {
	switch v := elem.(type) {
	case string:
		return types.NewContentFromText(v, types.RoleUser), nil
	case types.Content:
		c := v
		return &c, nil
	case *types.Content:
		if v == nil {
			return nil, fmt.Errorf("%w: nil content", ErrUnsupportedInput)
		}
		return v, nil
	case map[string]any:
		if hasKey(v, "parts", "role") {
			var c types.Content
			if err := decodeMap(v, &c); err != nil {
				return nil, err
			}
			return &c, nil
		}
		part, err := toPart(v)
		if err != nil {
			return nil, err
		}
		return types.NewUserContent(part), nil
	default:
		part, err := toPart(elem)
		if err != nil {
			return nil, err
		}
		return types.NewUserContent(part), nil
	}
}

// toPart coerces part-shaped input: typed parts, media values, or maps
// keyed like a part or a blob.
func toPart(input any) (*types.Part, error) {
	switch v := input.(type) {
	case types.Part:
		p := v
		return &p, nil
	case *types.Part:
		if v == nil {
			return nil, fmt.Errorf("%w: nil part", ErrUnsupportedInput)
		}
		return v, nil
	case types.Blob:
		b := v
		return &types.Part{InlineData: &b}, nil
	case *types.Blob:
		return &types.Part{InlineData: v}, nil
	case types.FileData:
		f := v
		return &types.Part{FileData: &f}, nil
	case *types.FileData:
		return &types.Part{FileData: v}, nil
	case map[string]any:
		if hasKey(v, "text", "inline_data", "file_data") {
			var p types.Part
			if err := decodeMap(v, &p); err != nil {
				return nil, err
			}
			return &p, nil
		}
		if hasKey(v, "data") {
			blob, err := blobFromMap(v)
			if err != nil {
				return nil, err
			}
			return &types.Part{InlineData: blob}, nil
		}
		return nil, fmt.Errorf("%w: map with keys [%s] is not a part", ErrUnsupportedInput, keyList(v))
	case image.Image:
		blob, err := blobFromImage(v)
		if err != nil {
			return nil, err
		}
		return &types.Part{InlineData: blob}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
}

// toRealtimeInput coerces any accepted realtime media input shape into a
// RealtimeInput envelope payload. Chunk order follows input order.
func toRealtimeInput(input any) (*types.RealtimeInput, error) {
	switch v := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil realtime input", ErrUnsupportedInput)
	case types.RealtimeInput:
		return &v, nil
	case *types.RealtimeInput:
		if v == nil {
			return nil, fmt.Errorf("%w: nil realtime input", ErrUnsupportedInput)
		}
		return v, nil
	case []*types.Blob:
		return &types.RealtimeInput{MediaChunks: v}, nil
	case []types.Blob:
		chunks := make([]*types.Blob, len(v))
		for i := range v {
			chunks[i] = &v[i]
		}
		return &types.RealtimeInput{MediaChunks: chunks}, nil
	case map[string]any:
		if hasKey(v, "media_chunks") {
			var ri types.RealtimeInput
			if err := decodeMap(v, &ri); err != nil {
				return nil, err
			}
			return &ri, nil
		}
		blob, err := toBlob(v)
		if err != nil {
			return nil, err
		}
		return &types.RealtimeInput{MediaChunks: []*types.Blob{blob}}, nil
	case []any:
		chunks := make([]*types.Blob, 0, len(v))
		for i, elem := range v {
			blob, err := toBlob(elem)
			if err != nil {
				return nil, fmt.Errorf("media chunk %d: %w", i, err)
			}
			chunks = append(chunks, blob)
		}
		return &types.RealtimeInput{MediaChunks: chunks}, nil
	case []map[string]any:
		chunks := make([]*types.Blob, 0, len(v))
		for i, elem := range v {
			blob, err := toBlob(elem)
			if err != nil {
				return nil, fmt.Errorf("media chunk %d: %w", i, err)
			}
			chunks = append(chunks, blob)
		}
		return &types.RealtimeInput{MediaChunks: chunks}, nil
	default:
		blob, err := toBlob(input)
		if err != nil {
			return nil, err
		}
		return &types.RealtimeInput{MediaChunks: []*types.Blob{blob}}, nil
	}
}

// toBlob coerces a single media chunk: a typed blob, a blob-shaped map, or
// a raw image (JPEG-encoded).
func toBlob(input any) (*types.Blob, error) {
	switch v := input.(type) {
	case types.Blob:
		b := v
		return &b, nil
	case *types.Blob:
		if v == nil {
			return nil, fmt.Errorf("%w: nil blob", ErrUnsupportedInput)
		}
		return v, nil
	case map[string]any:
		return blobFromMap(v)
	case image.Image:
		return blobFromImage(v)
	}
	return nil, fmt.Errorf("%w: %T is not a media chunk", ErrUnsupportedInput, input)
}

// toToolResponse coerces any accepted tool-response input shape into a
// ToolResponse envelope payload. Response order follows input order.
func toToolResponse(input any) (*types.ToolResponse, error) {
	switch v := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil tool response", ErrUnsupportedInput)
	case types.ToolResponse:
		return &v, nil
	case *types.ToolResponse:
		if v == nil {
			return nil, fmt.Errorf("%w: nil tool response", ErrUnsupportedInput)
		}
		return v, nil
	case types.FunctionResponse:
		fr := v
		return &types.ToolResponse{FunctionResponses: []*types.FunctionResponse{&fr}}, nil
	case *types.FunctionResponse:
		return &types.ToolResponse{FunctionResponses: []*types.FunctionResponse{v}}, nil
	case []*types.FunctionResponse:
		return &types.ToolResponse{FunctionResponses: v}, nil
	case []types.FunctionResponse:
		frs := make([]*types.FunctionResponse, len(v))
		for i := range v {
			frs[i] = &v[i]
		}
		return &types.ToolResponse{FunctionResponses: frs}, nil
	case map[string]any:
		if hasKey(v, "function_responses") {
			var tr types.ToolResponse
			if err := decodeMap(v, &tr); err != nil {
				return nil, err
			}
			return &tr, nil
		}
		fr, err := functionResponseFromMap(v)
		if err != nil {
			return nil, err
		}
		return &types.ToolResponse{FunctionResponses: []*types.FunctionResponse{fr}}, nil
	case []any:
		frs := make([]*types.FunctionResponse, 0, len(v))
		for i, elem := range v {
			fr, err := toFunctionResponse(elem)
			if err != nil {
				return nil, fmt.Errorf("function response %d: %w", i, err)
			}
			frs = append(frs, fr)
		}
		return &types.ToolResponse{FunctionResponses: frs}, nil
	case []map[string]any:
		frs := make([]*types.FunctionResponse, 0, len(v))
		for i, elem := range v {
			fr, err := toFunctionResponse(elem)
			if err != nil {
				return nil, fmt.Errorf("function response %d: %w", i, err)
			}
			frs = append(frs, fr)
		}
		return &types.ToolResponse{FunctionResponses: frs}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
}

// toFunctionResponse coerces one element of a tool-response list.
func toFunctionResponse(elem any) (*types.FunctionResponse, error) {
	switch v := elem.(type) {
	case types.FunctionResponse:
		fr := v
		return &fr, nil
	case *types.FunctionResponse:
		if v == nil {
			return nil, fmt.Errorf("%w: nil function response", ErrUnsupportedInput)
		}
		return v, nil
	case map[string]any:
		return functionResponseFromMap(v)
	}
	return nil, fmt.Errorf("%w: %T is not a function response", ErrUnsupportedInput, elem)
}

func functionResponseFromMap(m map[string]any) (*types.FunctionResponse, error) {
	if !hasKey(m, "name") && !hasKey(m, "response") {
		return nil, fmt.Errorf("%w: map with keys [%s] is not a function response",
			ErrUnsupportedInput, keyList(m))
	}
	var fr types.FunctionResponse
	if err := decodeMap(m, &fr); err != nil {
		return nil, err
	}
	return &fr, nil
}

func blobFromMap(m map[string]any) (*types.Blob, error) {
	if !hasKey(m, "data") && !hasKey(m, "mime_type") {
		return nil, fmt.Errorf("%w: map with keys [%s] is not a blob",
			ErrUnsupportedInput, keyList(m))
	}
	var b types.Blob
	if err := decodeMap(m, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func blobFromImage(img image.Image) (*types.Blob, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &types.Blob{Data: buf.Bytes(), MIMEType: "image/jpeg"}, nil
}

// decodeMap decodes a caller-supplied map into a wire struct. Key matching
// is lenient about casing (media_chunks and mediaChunks both work) but the
// key set is strict: unknown keys are an error rather than silently
// dropped.
func decodeMap(m map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "json",
		MatchName:   matchWireKey,
		DecodeHook:  base64ToBytesHook,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("build map decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	return nil
}

func matchWireKey(mapKey, fieldName string) bool {
	return foldKey(mapKey) == foldKey(fieldName)
}

// foldKey reduces a key to lowercase without underscores so snake_case and
// camelCase spellings of the same wire name compare equal.
func foldKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

// base64ToBytesHook lets blob data arrive either as raw bytes or as a
// std-base64 string.
func base64ToBytesHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf([]byte(nil)) {
		decoded, err := base64.StdEncoding.DecodeString(data.(string))
		if err != nil {
			return nil, fmt.Errorf("decode base64 data: %w", err)
		}
		return decoded, nil
	}
	return data, nil
}

func hasKey(m map[string]any, names ...string) bool {
	for k := range m {
		fk := foldKey(k)
		for _, name := range names {
			if fk == foldKey(name) {
				return true
			}
		}
	}
	return false
}

func keyList(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, " ")
}
