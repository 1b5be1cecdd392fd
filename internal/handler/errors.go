package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/middleware"
)

type errorMapping struct {
	err    error
	status int
	key    string
	// formatted messages take the args given to respondError
	formatted bool
}

// errorMappings most specific first; wrapped errors match their sentinel
var errorMappings = []errorMapping{
	{common.ErrUnauthorized, http.StatusUnauthorized, "auth.unauthorized", false},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, "auth.invalid_credentials", false},
	{common.ErrDuplicateEmail, http.StatusConflict, "auth.duplicate_email", false},
	{common.ErrPasswordMismatch, http.StatusBadRequest, "auth.password_mismatch", false},
	{common.ErrPasswordTooShort, http.StatusBadRequest, "auth.password_too_short", true},
	{common.ErrUnknownCategory, http.StatusBadRequest, "service.unknown_category", false},
	{common.ErrInvalidImage, http.StatusBadRequest, "profile.invalid_image", false},
	{common.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "profile.image_too_large", false},
	{common.ErrEmptyMessage, http.StatusBadRequest, "chat.empty_message", false},
	{common.ErrSelfContact, http.StatusBadRequest, "chat.self_contact", false},
	{common.ErrNoConversations, http.StatusNotFound, "chat.no_conversations", false},
	{common.ErrRecordingActive, http.StatusConflict, "chat.recording_active", false},
	{common.ErrNotRecording, http.StatusConflict, "chat.not_recording", false},
	{common.ErrMicrophone, http.StatusServiceUnavailable, "chat.microphone", false},
	{common.ErrRecordingTooLarge, http.StatusRequestEntityTooLarge, "chat.recording_too_large", false},
	{common.ErrNotFound, http.StatusNotFound, "error.not_found", false},
	{common.ErrForbidden, http.StatusForbidden, "error.forbidden", false},
	{common.ErrInvalidInput, http.StatusBadRequest, "error.validation", false},
}

// respondError writes err as a translated error response; args feed the message format
func respondError(c *gin.Context, err error, args ...interface{}) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := middleware.Translate(c, m.key)
		if m.formatted {
			msg = middleware.Translate(c, m.key, args...)
		}
		common.ErrorResponse(c, m.status, msg, err)
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, middleware.Translate(c, "error.internal"), err)
}

// bindError responds to a malformed request body
func bindError(c *gin.Context, err error) {
	common.ErrorResponse(c, http.StatusBadRequest, middleware.Translate(c, "error.bad_request"), err)
}
