//
// Copyright (C) 2025 The genlive-go Authors.  All rights reserved.
//
// genlive-go is licensed under the Apache License Version 2.0.
//
//

package live

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/genlive/genlive-go/types"
)

// StartStream reads r until EOF and sends each chunk as a realtime_input
// envelope with the given media type. Chunks are sent in read order, one
// message per chunk. The chunk size is configured with WithChunkSize.
func (s *Session) StartStream(ctx context.Context, r io.Reader, mimeType string) error {
	if r == nil {
		return fmt.Errorf("%w: nil stream reader", ErrUnsupportedInput)
	}
	if mimeType == "" {
		return fmt.Errorf("%w: stream mime type is empty", ErrUnsupportedInput)
	}

	buf := make([]byte, s.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if sendErr := s.SendRealtimeInput(ctx, &types.Blob{
				Data:     chunk,
				MIMEType: mimeType,
			}); sendErr != nil {
				return sendErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
	}
}
