package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/krishi-mitra/internal/common"
)

func (h *Handler) ListSessions(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	list, err := h.ChatSvc.Sessions(c.Request.Context(), uid)
	if err != nil {
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, list)
}

func (h *Handler) NewSession(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	sid, err := h.ChatSvc.NewSession(c.Request.Context(), uid)
	if err != nil {
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, gin.H{"session_id": sid})
}

func (h *Handler) ActivateSession(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	sid := c.Param("session_id")
	if err := h.ChatSvc.Activate(c.Request.Context(), uid, sid); err != nil {
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, gin.H{"session_id": sid})
}

func (h *Handler) SessionMessages(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	sid := c.Param("session_id")
	turns, err := h.ChatSvc.SessionMessages(c.Request.Context(), uid, sid)
	if err != nil {
		h.writeChatError(c, uid, err)
		return
	}
	common.OK(c, gin.H{"session_id": sid, "messages": turns})
}
