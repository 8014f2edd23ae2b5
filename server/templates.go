package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kwhite/mailagent/template"
)

// CreateTemplateRequest creates a template; language defaults to "en".
type CreateTemplateRequest struct {
	Title    string `json:"title" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Purpose  string `json:"purpose" binding:"required"`
	Language string `json:"language"`
}

func (s *Server) templateID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template id", "details": err.Error()})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListTemplates(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	templates, err := s.templates.List(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if templates == nil {
		templates = []template.Template{}
	}
	c.JSON(http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(c *gin.Context) {
	id, ok := s.templateID(c)
	if !ok {
		return
	}
	tpl, err := s.templates.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (s *Server) handleCreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	tpl, err := s.templates.Create(c.Request.Context(), template.Template{
		Title:    req.Title,
		Subject:  req.Subject,
		Content:  req.Content,
		Purpose:  req.Purpose,
		Language: req.Language,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (s *Server) handleUpdateTemplate(c *gin.Context) {
	id, ok := s.templateID(c)
	if !ok {
		return
	}
	var update template.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	tpl, err := s.templates.Update(c.Request.Context(), id, update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (s *Server) handleDeleteTemplate(c *gin.Context) {
	id, ok := s.templateID(c)
	if !ok {
		return
	}
	if err := s.templates.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email template deleted successfully"})
}

func (s *Server) handleGenerateTemplate(c *gin.Context) {
	var req template.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Purpose == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": "purpose is required"})
		return
	}
	doc, err := s.tplSvc.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream model error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) handleTranslateTemplate(c *gin.Context) {
	var req template.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Content == "" || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": "content and target_language are required"})
		return
	}
	doc, err := s.tplSvc.Translate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream model error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}
