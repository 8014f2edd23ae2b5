package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwhite/mailagent/assistant"
	"github.com/kwhite/mailagent/template"
)

// Server exposes the assistant and template services over HTTP.
type Server struct {
	assistant *assistant.Service
	templates template.Store
	tplSvc    *template.Service
}

func New(assistantSvc *assistant.Service, templates template.Store, tplSvc *template.Service) (*Server, error) {
	if assistantSvc == nil {
		return nil, errors.New("server: assistant service must not be nil")
	}
	if templates == nil {
		return nil, errors.New("server: template store must not be nil")
	}
	if tplSvc == nil {
		return nil, errors.New("server: template service must not be nil")
	}
	return &Server{assistant: assistantSvc, templates: templates, tplSvc: tplSvc}, nil
}

// Router builds the gin engine with all routes registered under /api.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	api := r.Group("/api")
	s.registerAssistantRoutes(api)
	s.registerTemplateRoutes(api)
	return r
}

func (s *Server) registerAssistantRoutes(api *gin.RouterGroup) {
	grp := api.Group("/assistant")
	{
		grp.POST("/chat", s.handleChat)
		grp.POST("/confirm-and-generate", s.handleConfirmAndGenerate)
		grp.POST("/revise", s.handleRevise)
		grp.GET("/conversation/:id", s.handleConversationHistory)
		grp.GET("/details/:id", s.handleConversationDetails)
		grp.POST("/new-conversation", s.handleNewConversation)
	}
}

func (s *Server) registerTemplateRoutes(api *gin.RouterGroup) {
	grp := api.Group("/email-templates")
	{
		grp.GET("", s.handleListTemplates)
		grp.POST("", s.handleCreateTemplate)
		grp.POST("/generate", s.handleGenerateTemplate)
		grp.POST("/translate", s.handleTranslateTemplate)
		grp.GET("/:id", s.handleGetTemplate)
		grp.PUT("/:id", s.handleUpdateTemplate)
		grp.DELETE("/:id", s.handleDeleteTemplate)
	}
}

// writeError maps service errors onto HTTP statuses with an {error, details}
// body.
func writeError(c *gin.Context, err error) {
	var svcErr *assistant.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case assistant.ErrorNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found", "details": svcErr.Reason})
		case assistant.ErrorInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": svcErr.Reason})
		case assistant.ErrorCollaborator:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream model error", "details": svcErr.Reason})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "details": svcErr.Reason})
		}
		return
	}
	if errors.Is(err, template.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Email template not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "details": err.Error()})
}
