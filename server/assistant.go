package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwhite/mailagent/types"
)

// ChatRequest is one inbound user turn.
type ChatRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	UserMessage    string `json:"user_message" binding:"required"`
}

// ConfirmRequest carries the caller-confirmed details. The confirmation is
// authoritative: the fields are applied verbatim.
type ConfirmRequest struct {
	ConversationID   string             `json:"conversation_id" binding:"required"`
	ConfirmedDetails types.EmailDetails `json:"confirmed_details"`
}

// ReviseRequest asks for a revision of the current email.
type ReviseRequest struct {
	ConversationID string              `json:"conversation_id" binding:"required"`
	CurrentEmail   types.EmailDocument `json:"current_email"`
	Feedback       string              `json:"feedback" binding:"required"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	resp, err := s.assistant.ProcessMessage(c.Request.Context(), req.ConversationID, req.UserMessage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleConfirmAndGenerate(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	resp, err := s.assistant.ConfirmAndGenerate(c.Request.Context(), req.ConversationID, req.ConfirmedDetails)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRevise(c *gin.Context) {
	var req ReviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	resp, err := s.assistant.Revise(c.Request.Context(), req.ConversationID, req.CurrentEmail, req.Feedback)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleConversationHistory(c *gin.Context) {
	turns, err := s.assistant.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if turns == nil {
		turns = []types.Turn{}
	}
	c.JSON(http.StatusOK, turns)
}

func (s *Server) handleConversationDetails(c *gin.Context) {
	state, err := s.assistant.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleNewConversation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conversation_id": s.assistant.NewConversation()})
}
