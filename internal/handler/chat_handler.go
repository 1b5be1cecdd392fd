package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/audio"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/service"
)

// ChatHandler handles the contact flow, chat messages and voice recording
type ChatHandler struct {
	store       *service.Store
	recorder    *audio.Recorder
	mic         *audio.StreamMicrophone
	maxAudio    int64
	defaultMIME string
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(store *service.Store, recorder *audio.Recorder, mic *audio.StreamMicrophone, maxAudio int64, defaultMIME string) *ChatHandler {
	return &ChatHandler{
		store:       store,
		recorder:    recorder,
		mic:         mic,
		maxAudio:    maxAudio,
		defaultMIME: defaultMIME,
	}
}

// ContactRequest member and service to contact
type ContactRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`
}

// StartRecordingRequest optional MIME type of the chunks to come
type StartRecordingRequest struct {
	Type string `json:"type"`
}

// StartContact handles POST /api/contact
func (h *ChatHandler) StartContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	outcome, err := h.store.Dispatch(service.StartContact{UserID: req.UserID, ServiceID: req.ServiceID})
	if err != nil {
		respondError(c, err)
		return
	}
	if errors.Is(resultError(outcome), common.ErrUnauthorized) {
		respondState(c, h.store, outcome, "auth.unauthorized")
		return
	}
	respondState(c, h.store, outcome)
}

// StartConversation handles POST /api/conversations
func (h *ChatHandler) StartConversation(c *gin.Context) {
	var req domain.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	dispatch(c, h.store, service.StartConversation{ReceiverID: req.ReceiverID, ServiceID: req.ServiceID, Text: req.Text})
}

// GetChat handles GET /api/chat
func (h *ChatHandler) GetChat(c *gin.Context) {
	st := h.store.Snapshot()
	if st.CurrentUser == nil {
		respondError(c, common.ErrUnauthorized)
		return
	}
	session, ok := st.FindSession(st.ActiveChatSessionID)
	if st.Page != domain.PageChat || !ok {
		respondError(c, fmt.Errorf("%w: no active chat", common.ErrNotFound))
		return
	}

	view := ChatView{
		SessionID: session.ID,
		Messages:  make([]MessageView, 0),
		Recording: h.recorder.Active(),
	}
	if otherID, ok := service.OtherParticipant(session, st.CurrentUser.ID); ok {
		if other, ok := st.FindUser(otherID); ok {
			view.Counterpart = newUserView(other)
		}
	}
	if svc, ok := st.FindService(session.ServiceID); ok {
		s := *svc
		view.Service = &s
	}
	for _, m := range service.SessionMessages(st.ChatMessages, session.ID) {
		view.Messages = append(view.Messages, MessageView{ChatMessage: m, Mine: m.SenderID == st.CurrentUser.ID})
	}
	common.SuccessResponse(c, view, &common.Meta{Total: len(view.Messages)})
}

// SendMessage handles POST /api/chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if h.recorder.Active() {
		respondError(c, common.ErrRecordingActive)
		return
	}
	dispatch(c, h.store, service.SendMessage{Text: req.Text})
}

// UploadAudio handles POST /api/chat/audio (multipart field "audio")
func (h *ChatHandler) UploadAudio(c *gin.Context) {
	if h.maxAudio > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAudio+1<<20)
	}
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, common.ErrRecordingTooLarge)
			return
		}
		bindError(c, err)
		return
	}
	defer file.Close()

	if h.maxAudio > 0 && header.Size > h.maxAudio {
		respondError(c, common.ErrRecordingTooLarge)
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		bindError(c, err)
		return
	}
	if len(data) == 0 {
		respondError(c, common.ErrEmptyMessage)
		return
	}

	mime := h.audioType(c.PostForm("type"), header.Header.Get("Content-Type"))
	payload := &domain.AudioPayload{DataURL: audio.EncodeDataURL(mime, data), MIMEType: mime}
	dispatch(c, h.store, service.SendMessage{Audio: payload})
}

// StartRecording handles POST /api/chat/recording
func (h *ChatHandler) StartRecording(c *gin.Context) {
	var req StartRecordingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	h.mic.SetMIMEType(h.audioType(req.Type))
	if err := h.recorder.Start(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"recording": true}, nil)
}

// PushChunk handles POST /api/chat/recording/chunks (raw body)
func (h *ChatHandler) PushChunk(c *gin.Context) {
	if h.maxAudio > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAudio)
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, common.ErrRecordingTooLarge)
			return
		}
		bindError(c, err)
		return
	}
	if err := h.mic.Push(c.Request.Context(), data); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"received": len(data)}, nil)
}

// StopRecording handles POST /api/chat/recording/stop
func (h *ChatHandler) StopRecording(c *gin.Context) {
	res, err := h.recorder.Stop(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, res, nil)
}

// CancelRecording handles DELETE /api/chat/recording
func (h *ChatHandler) CancelRecording(c *gin.Context) {
	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"cancelled": h.recorder.Cancel()}})
}

// audioType first usable MIME type among candidates, else the configured default
func (h *ChatHandler) audioType(candidates ...string) string {
	for _, t := range candidates {
		t = strings.TrimSpace(strings.SplitN(t, ";", 2)[0])
		if strings.HasPrefix(t, "audio/") {
			return t
		}
	}
	return h.defaultMIME
}

func resultError(outcome *service.Outcome) error {
	if outcome == nil {
		return nil
	}
	err, _ := outcome.Result.(error)
	return err
}
