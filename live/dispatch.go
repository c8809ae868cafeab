//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package live

import (
	"fmt"
	"image"

	"github.com/genlive/genlive-go/types"
)

// classify decides which envelope an input value routes to. Lists are
// classified by their first element; the per-envelope coercion then rejects
// any element of another kind.
func classify(input any) (string, error) {
	switch v := input.(type) {
	case nil:
		return "", fmt.Errorf("%w: nil input", ErrUnsupportedInput)
	case string,
		types.Content, *types.Content, []*types.Content, []types.Content,
		types.Part, *types.Part, []*types.Part, []types.Part,
		types.FileData, *types.FileData,
		types.ClientContent, *types.ClientContent:
		return types.KindClientContent, nil
	case types.Blob, *types.Blob, []*types.Blob, []types.Blob,
		types.RealtimeInput, *types.RealtimeInput:
		return types.KindRealtimeInput, nil
	case types.FunctionResponse, *types.FunctionResponse,
		[]*types.FunctionResponse, []types.FunctionResponse,
		types.ToolResponse, *types.ToolResponse:
		return types.KindToolResponse, nil
	case image.Image:
		return types.KindRealtimeInput, nil
	case map[string]any:
		return classifyMap(v)
	case []map[string]any:
		if len(v) == 0 {
			return "", fmt.Errorf("%w: empty list", ErrUnsupportedInput)
		}
		return classifyMap(v[0])
	case []any:
		if len(v) == 0 {
			return "", fmt.Errorf("%w: empty list", ErrUnsupportedInput)
		}
		return classify(v[0])
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
}

// classifyMap dispatches a map input on its key set. Envelope keys win over
// part- and blob-shaped keys so an explicit envelope is never reinterpreted.
func classifyMap(m map[string]any) (string, error) {
	switch {
	case hasKey(m, "turns", "turn_complete", "parts", "role", "text", "inline_data", "file_data"):
		return types.KindClientContent, nil
	case hasKey(m, "media_chunks"):
		return types.KindRealtimeInput, nil
	case hasKey(m, "function_responses"):
		return types.KindToolResponse, nil
	case hasKey(m, "name", "response"):
		return types.KindToolResponse, nil
	case hasKey(m, "data"):
		return types.KindRealtimeInput, nil
	}
	return "", fmt.Errorf("%w: map with keys [%s]", ErrUnsupportedInput, keyList(m))
}
