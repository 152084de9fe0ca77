package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjwaight/gu/internal/apierror"
	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/service"
)

type ArticlesHandler struct{ svc service.ArticleService }

func NewArticlesHandler(svc service.ArticleService) *ArticlesHandler {
	return &ArticlesHandler{svc: svc}
}

func (h *ArticlesHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ArticlesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateArticleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) GetBySlug(c *gin.Context) {
	resp, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Article not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) List(c *gin.Context) {
	var filter dto.ArticleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list articles"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) Publish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.PublishNow(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) MakeTopStory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.MakeTopStory(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
