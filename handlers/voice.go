package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"dinevoice/models"
	"dinevoice/services/conversation"
	"dinevoice/services/speech"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const allowedAudioExtension = ".wav"

// VoiceHandler serves server-hosted conversations and transcription.
type VoiceHandler struct {
	Host *conversation.Host
	// Transcriber is nil when no speech credentials are configured.
	Transcriber speech.Transcriber
	Language    string
}

func NewVoiceHandler(host *conversation.Host, transcriber speech.Transcriber, language string) *VoiceHandler {
	return &VoiceHandler{Host: host, Transcriber: transcriber, Language: language}
}

type utteranceRequest struct {
	Text string `json:"text" binding:"required"`
}

type voiceReply struct {
	SessionID string              `json:"sessionId"`
	Stage     conversation.Stage  `json:"stage"`
	Prompts   []string            `json:"prompts"`
	Listen    bool                `json:"listen"`
	Draft     models.BookingDraft `json:"draft"`
	Booking   *models.Booking     `json:"booking,omitempty"`
}

func toVoiceReply(r *conversation.Reply) voiceReply {
	return voiceReply{
		SessionID: r.Session.ID,
		Stage:     r.Session.Stage,
		Prompts:   r.Prompts,
		Listen:    r.Listen,
		Draft:     r.Session.Draft,
		Booking:   r.Session.Booking,
	}
}

// StartSession handles POST /api/voice/sessions.
func (h *VoiceHandler) StartSession(c *gin.Context) {
	reply, err := h.Host.StartSession(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to start voice session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to start session"})
		return
	}
	c.JSON(http.StatusCreated, toVoiceReply(reply))
}

// HandleUtterance handles POST /api/voice/sessions/:id/utterances.
func (h *VoiceHandler) HandleUtterance(c *gin.Context) {
	var req utteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}

	reply, err := h.Host.HandleUtterance(c.Request.Context(), c.Param("id"), req.Text)
	if errors.Is(err, conversation.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to handle utterance", zap.String("sessionID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to handle utterance"})
		return
	}
	c.JSON(http.StatusOK, toVoiceReply(reply))
}

// GetSession handles GET /api/voice/sessions/:id.
func (h *VoiceHandler) GetSession(c *gin.Context) {
	session, err := h.Host.GetSession(c.Request.Context(), c.Param("id"))
	if errors.Is(err, conversation.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to load voice session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// EndSession handles DELETE /api/voice/sessions/:id.
func (h *VoiceHandler) EndSession(c *gin.Context) {
	err := h.Host.EndSession(c.Request.Context(), c.Param("id"))
	if errors.Is(err, conversation.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to end voice session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// Transcribe handles POST /api/voice/transcribe with a multipart "audio" WAV.
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	if h.Transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "speech recognition is not configured"})
		return
	}

	language := c.DefaultPostForm("language", h.Language)

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != allowedAudioExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", allowedAudioExtension, ext),
		})
		return
	}
	if header.Size > speech.MaxAudioBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file too large"})
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, speech.MaxAudioBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio file", "details": err.Error()})
		return
	}

	text, err := h.Transcriber.Transcribe(c.Request.Context(), audio, language)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"transcription": text})
	case errors.Is(err, speech.ErrNoSpeechDetected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no speech detected"})
	case errors.Is(err, speech.ErrUnsupportedAudio):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported audio", "details": err.Error()})
	case errors.Is(err, speech.ErrPermissionDenied):
		getLogger(c).Error("Speech service rejected credentials", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "speech service denied the request"})
	default:
		getLogger(c).Error("Speech recognition failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech recognition failed"})
	}
}
