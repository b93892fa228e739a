package stream

import (
	"context"
	"io"

	"github.com/hupe1980/chatmesh/core"
)

// DefaultChunkSize is the chunk width used when none is configured.
const DefaultChunkSize = 24

// Source is a cancellable chunked view over a full content string. It is a
// finite lazy sequence: each Next call checks the context first, then hands
// out the next fixed-size fragment. Restartable only by constructing a new
// Source. Not safe for concurrent use; there is exactly one consumer by
// construction.
type Source struct {
	content string
	size    int
	pos     int
}

// NewSource creates a chunk source over content. A chunkSize below 1 is
// clamped to DefaultChunkSize.
func NewSource(content string, chunkSize int) *Source {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return &Source{content: content, size: chunkSize}
}

// Next returns the next chunk. It returns io.EOF once the sequence is
// exhausted, and a cancellation-kind error when the context fires before
// exhaustion.
func (s *Source) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", core.NewError(core.KindCancelled, "stream.next", err)
	}
	if s.pos >= len(s.content) {
		return "", io.EOF
	}

	end := s.pos + s.size
	if end > len(s.content) {
		end = len(s.content)
	}
	chunk := s.content[s.pos:end]
	s.pos = end
	return chunk, nil
}
