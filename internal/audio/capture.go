package audio

import (
	"context"
	"sync"
)

// Capture open microphone stream.
//
// Chunks is closed once the stream ends; Close releases the device and must make
// Chunks close. Close may be called more than once.
type Capture interface {
	Chunks() <-chan []byte
	MIMEType() string
	Close() error
}

// Microphone grants access to a capture device
type Microphone interface {
	Open(ctx context.Context) (Capture, error)
}

// StreamMicrophone is a Microphone fed by pushed chunks, e.g. blobs uploaded by a
// browser MediaRecorder. Only the most recently opened capture receives chunks.
type StreamMicrophone struct {
	mu      sync.Mutex
	mime    string
	current *streamCapture
}

// NewStreamMicrophone creates a StreamMicrophone producing mime-typed audio
func NewStreamMicrophone(mime string) *StreamMicrophone {
	return &StreamMicrophone{mime: mime}
}

func (m *StreamMicrophone) Open(ctx context.Context) (Capture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := &streamCapture{
		mime:   m.mime,
		chunks: make(chan []byte, 16),
		closed: make(chan struct{}),
	}
	m.mu.Lock()
	m.current = c
	m.mu.Unlock()
	return c, nil
}

// SetMIMEType changes the type reported by captures opened afterwards
func (m *StreamMicrophone) SetMIMEType(mime string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mime = mime
}

// Push hands chunk to the open capture. It blocks while the capture buffer is full
// and fails with ErrNotRecording when no capture is open.
func (m *StreamMicrophone) Push(ctx context.Context, chunk []byte) error {
	m.mu.Lock()
	c := m.current
	m.mu.Unlock()
	if c == nil {
		return errNoCapture
	}
	return c.push(ctx, chunk)
}

type streamCapture struct {
	mime   string
	chunks chan []byte
	closed chan struct{}

	// mu guards sends on chunks against the final close
	mu   sync.RWMutex
	once sync.Once
}

func (c *streamCapture) Chunks() <-chan []byte { return c.chunks }

func (c *streamCapture) MIMEType() string { return c.mime }

func (c *streamCapture) Close() error {
	c.once.Do(func() {
		close(c.closed)
		c.mu.Lock()
		close(c.chunks)
		c.mu.Unlock()
	})
	return nil
}

func (c *streamCapture) push(ctx context.Context, chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}
	data := append([]byte(nil), chunk...)

	c.mu.RLock()
	defer c.mu.RUnlock()
	select {
	case <-c.closed:
		return errNoCapture
	default:
	}
	select {
	case c.chunks <- data:
		return nil
	case <-c.closed:
		return errNoCapture
	case <-ctx.Done():
		return ctx.Err()
	}
}
