package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/krishi-mitra/internal/chat"
	"github.com/suPer8Hu/krishi-mitra/internal/common"
	"github.com/suPer8Hu/krishi-mitra/internal/models"
)

type chatReq struct {
	Message          string   `json:"message"`
	UserQuery        string   `json:"userQuery"`
	DetectedDiseases []string `json:"detectedDiseases"`
	ImageCount       int      `json:"imageCount"`
	// Optional override of the user's preferred language.
	Language string `json:"language"`
}

func (h *Handler) sendRequest(c *gin.Context, uid uint64, req chatReq) chat.SendRequest {
	lang := req.Language
	if lang == "" {
		var u models.User
		if err := h.DB.WithContext(c.Request.Context()).Select("preferred_language").First(&u, uid).Error; err == nil {
			lang = u.PreferredLanguage
		}
	}
	return chat.SendRequest{
		UserID:           uid,
		Message:          req.Message,
		UserQuery:        req.UserQuery,
		Language:         lang,
		DetectedDiseases: req.DetectedDiseases,
		ImageCount:       req.ImageCount,
	}
}

// writeChatError maps chat errors onto the response envelope.
func (h *Handler) writeChatError(c *gin.Context, uid uint64, err error) {
	var full *chat.SessionFullError
	switch {
	case errors.As(err, &full):
		common.FailWithData(c, http.StatusBadRequest, 40009, "session is full, please start a new chat", gin.H{
			"session_full":    true,
			"current_size_mb": full.CurrentMB,
			"limit_mb":        full.LimitMB,
		})
	case errors.Is(err, chat.ErrEmptyMessage):
		common.Fail(c, http.StatusBadRequest, 10002, "message is required")
	case errors.Is(err, chat.ErrInvalidSession):
		common.Fail(c, http.StatusBadRequest, 10003, "invalid session id")
	case errors.Is(err, chat.ErrForbidden):
		common.Fail(c, http.StatusForbidden, 40301, "session belongs to another user")
	case errors.Is(err, chat.ErrNotFound):
		common.Fail(c, http.StatusNotFound, 40004, "not found")
	default:
		h.Log.Error("chat request failed", "user_id", uid, "path", c.FullPath(), "error", err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
	}
}

func (h *Handler) SendChat(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	res, err := h.ChatSvc.Send(c.Request.Context(), h.sendRequest(c, uid, req))
	if err != nil {
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, res)
}

func (h *Handler) ChatAsync(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if h.Jobs == nil {
		common.Fail(c, http.StatusServiceUnavailable, 50301, "async chat is not available")
		return
	}
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	idempoKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempoKey) > 128 {
		common.Fail(c, http.StatusBadRequest, 10004, "idempotency key too long")
		return
	}

	ctx := c.Request.Context()
	job, created, err := h.ChatSvc.Enqueue(ctx, h.sendRequest(c, uid, req), idempoKey)
	if err != nil {
		h.writeChatError(c, uid, err)
		return
	}

	// Enqueue only when a new job was created
	if created {
		if err := h.Jobs.PublishJob(ctx, job.ID); err != nil {
			h.Log.Error("publish chat job failed", "user_id", uid, "job_id", job.ID, "error", err)
			_ = h.ChatSvc.FailJob(ctx, job.ID, err)
			common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
			return
		}
	}
	common.OK(c, gin.H{"job_id": job.ID, "session_id": job.SessionID, "status": job.Status})
}

func (h *Handler) GetChatJob(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	job, err := h.ChatSvc.GetJob(c.Request.Context(), uid, c.Param("job_id"))
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, gin.H{"job": job})
}

func (h *Handler) ChatHistory(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	turns, err := h.ChatSvc.History(c.Request.Context(), uid)
	if err != nil {
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, gin.H{"history": turns})
}

func (h *Handler) ClearChat(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	n, err := h.ChatSvc.Clear(c.Request.Context(), uid)
	if err != nil {
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, gin.H{"deleted": n})
}
