package audio

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/service"
)

var (
	errNoCapture    = fmt.Errorf("%w: no open capture", common.ErrNotRecording)
	errNoActiveChat = fmt.Errorf("%w: no active chat", common.ErrInvalidInput)
)

// Dispatcher applies actions to the application state (implemented by *service.Store)
type Dispatcher interface {
	Dispatch(a service.Action) (*service.Outcome, error)
	Snapshot() *domain.AppState
}

// Recorder captures one voice message at a time for the active chat and sends it
// when stopped. The capture is released on stop, cancel, overflow, capture error
// and when the chat view is left.
type Recorder struct {
	mic         Microphone
	store       Dispatcher
	maxBytes    int64
	defaultMIME string
	log         zerolog.Logger

	mu  sync.Mutex
	cur *recording
}

type recording struct {
	sessionID string
	capture   Capture
	mime      string

	buf  bytes.Buffer
	err  error
	done chan struct{}
	once sync.Once
}

// release stops the capture device; safe to call from any exit path
func (r *recording) release(log zerolog.Logger) {
	r.once.Do(func() {
		if err := r.capture.Close(); err != nil {
			log.Warn().Err(err).Str("session_id", r.sessionID).Msg("failed to release capture")
		}
	})
}

// NewRecorder creates a Recorder. maxBytes <= 0 disables the size limit.
func NewRecorder(mic Microphone, store Dispatcher, maxBytes int64, defaultMIME string, log zerolog.Logger) *Recorder {
	return &Recorder{
		mic:         mic,
		store:       store,
		maxBytes:    maxBytes,
		defaultMIME: defaultMIME,
		log:         log,
	}
}

// Active reports whether a recording is in progress
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cur != nil
}

// Start opens the microphone for the active chat session.
func (r *Recorder) Start(ctx context.Context) error {
	st := r.store.Snapshot()
	if st.CurrentUser == nil {
		return common.ErrUnauthorized
	}
	if !chatShown(st, st.ActiveChatSessionID) {
		return errNoActiveChat
	}

	r.mu.Lock()
	if r.cur != nil {
		r.mu.Unlock()
		return common.ErrRecordingActive
	}

	capture, err := r.mic.Open(ctx)
	if err != nil {
		r.mu.Unlock()
		r.log.Warn().Err(err).Msg("microphone access failed")
		return fmt.Errorf("%w: %v", common.ErrMicrophone, err)
	}
	mime := capture.MIMEType()
	if mime == "" {
		mime = r.defaultMIME
	}
	rec := &recording{
		sessionID: st.ActiveChatSessionID,
		capture:   capture,
		mime:      mime,
		done:      make(chan struct{}),
	}
	r.cur = rec
	go r.collect(rec)
	r.mu.Unlock()

	// a commit may have left the chat before r.cur was set
	if !chatShown(r.store.Snapshot(), rec.sessionID) {
		r.mu.Lock()
		if r.cur == rec {
			r.cur = nil
		}
		r.mu.Unlock()
		rec.release(r.log)
		return errNoActiveChat
	}

	r.log.Debug().Str("session_id", rec.sessionID).Str("mime", mime).Msg("recording started")
	return nil
}

func chatShown(st *domain.AppState, sessionID string) bool {
	return st.Page == domain.PageChat && sessionID != "" && st.ActiveChatSessionID == sessionID
}

func (r *Recorder) collect(rec *recording) {
	defer close(rec.done)
	for chunk := range rec.capture.Chunks() {
		if rec.err != nil {
			continue
		}
		if r.maxBytes > 0 && int64(rec.buf.Len()+len(chunk)) > r.maxBytes {
			rec.err = common.ErrRecordingTooLarge
			r.log.Warn().Str("session_id", rec.sessionID).Int64("max_bytes", r.maxBytes).Msg("recording exceeds size limit")
			rec.release(r.log)
			continue
		}
		rec.buf.Write(chunk)
	}
}

// detach removes the current recording, if any
func (r *Recorder) detach() *recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.cur
	r.cur = nil
	return rec
}

// Stop ends the recording and sends the captured audio to the active chat.
func (r *Recorder) Stop(ctx context.Context) (service.SendResult, error) {
	rec := r.detach()
	if rec == nil {
		return service.SendResult{}, common.ErrNotRecording
	}
	rec.release(r.log)

	select {
	case <-rec.done:
	case <-ctx.Done():
		return service.SendResult{}, ctx.Err()
	}
	if rec.err != nil {
		return service.SendResult{}, rec.err
	}
	if rec.buf.Len() == 0 {
		return service.SendResult{}, common.ErrEmptyMessage
	}

	payload := &domain.AudioPayload{
		DataURL:  EncodeDataURL(rec.mime, rec.buf.Bytes()),
		MIMEType: rec.mime,
	}
	outcome, err := r.store.Dispatch(service.SendMessage{Audio: payload})
	if err != nil {
		return service.SendResult{}, err
	}
	res, _ := outcome.Result.(service.SendResult)
	r.log.Info().Str("session_id", rec.sessionID).Int("bytes", rec.buf.Len()).Bool("sent", res.Sent).Msg("voice message recorded")
	return res, nil
}

// Cancel discards the recording in progress. It reports whether one was active.
func (r *Recorder) Cancel() bool {
	rec := r.detach()
	if rec == nil {
		return false
	}
	rec.release(r.log)
	r.log.Debug().Str("session_id", rec.sessionID).Msg("recording discarded")
	return true
}

// OnCommit discards the recording once its chat is no longer shown.
func (r *Recorder) OnCommit(c *service.Commit) {
	r.mu.Lock()
	rec := r.cur
	if rec == nil || chatShown(c.State, rec.sessionID) {
		r.mu.Unlock()
		return
	}
	r.cur = nil
	r.mu.Unlock()

	rec.release(r.log)
	r.log.Debug().Str("session_id", rec.sessionID).Str("action", c.Action).Msg("chat left while recording, capture released")
}

// EncodeDataURL encodes audio as a base64 data URI
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
