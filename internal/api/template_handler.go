package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mycv/internal/api/middleware"
	"mycv/internal/database"
	"mycv/internal/printing"
	"mycv/internal/render"
	"mycv/internal/resume"
	"mycv/internal/richtext"
	"mycv/internal/theme"
)

// TemplateHandler 提供模板画廊、设计面板选项、富文本格式化与实时渲染。
type TemplateHandler struct {
	db      *gorm.DB
	printer *printing.Service
}

func NewTemplateHandler(db *gorm.DB, printer *printing.Service) *TemplateHandler {
	return &TemplateHandler{db: db, printer: printer}
}

type formatRequest struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Tag   string `json:"tag" binding:"required"`
}

type renderRequest struct {
	Document json.RawMessage `json:"document" binding:"required"`
	Theme    *theme.Theme    `json:"theme"`
	Template string          `json:"template"`
}

type renderedPage struct {
	Index int      `json:"index"`
	Left  []string `json:"left"`
	Right []string `json:"right"`
	HTML  string   `json:"html"`
}

// GET /v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, render.Templates())
}

// GET /v1/design/options
func (h *TemplateHandler) DesignOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fonts":    theme.Fonts(),
		"colors":   theme.Colors(),
		"sizes":    theme.Sizes(),
		"defaults": theme.Default(),
	})
}

// POST /v1/format
// 对选区应用行内标记，未知标签原样返回文本。
func (h *TemplateHandler) Format(c *gin.Context) {
	var req formatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"text": richtext.ApplyInlineMarkup(req.Text, req.Start, req.End, richtext.Tag(req.Tag)),
	})
}

// POST /v1/render
// 渲染未保存的文档，供编辑器实时预览。?format=html 返回完整打印文档。
func (h *TemplateHandler) Render(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			BadRequest(c, "missing document")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	if err := resume.Validate(req.Document); err != nil {
		InvalidDocument(c, err)
		return
	}
	doc, err := resume.Decode(req.Document, resume.FormatJSON)
	if err != nil {
		InvalidDocument(c, err)
		return
	}

	premium, err := database.IsPremium(c.Request.Context(), h.db, userID)
	if err != nil {
		Internal(c, "failed to load profile")
		return
	}

	job := printing.Job{
		Document:   doc,
		Theme:      theme.Default(),
		TemplateID: req.Template,
		Premium:    premium,
	}
	if req.Theme != nil {
		job.Theme = *req.Theme
	}
	middleware.SetTemplate(c, h.printer.TemplateID(job.TemplateID))

	log := middleware.LoggerFromContext(c)
	if c.Query("format") == "html" {
		html, err := h.printer.HTML(job)
		if err != nil {
			log.Error("render html document failed", slog.Any("error", err))
			Internal(c, "failed to render resume")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}

	pages, err := h.printer.Pages(job)
	if err != nil {
		log.Error("render pages failed", slog.Any("error", err))
		Internal(c, "failed to render resume")
		return
	}

	out := make([]renderedPage, 0, len(pages))
	for _, p := range pages {
		out = append(out, renderedPage{
			Index: p.Index,
			Left:  sectionIDs(p.Columns.Left),
			Right: sectionIDs(p.Columns.Right),
			HTML:  string(p.HTML),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"template":   h.printer.TemplateID(req.Template),
		"page_count": len(out),
		"pages":      out,
		"stylesheet": render.Stylesheet,
	})
}

func sectionIDs(sections []resume.Section) []string {
	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}
