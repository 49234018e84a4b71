package encryption

import (
	"sync"
)

const defaultBufferSize = 32 * 1024 // 32KB default copy buffer

// bufferPool provides reusable copy buffers for the streaming encrypt and
// decrypt paths, shared across the processor's worker goroutines.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, defaultBufferSize)
	},
}
