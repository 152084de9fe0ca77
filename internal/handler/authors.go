package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjwaight/gu/internal/apierror"
	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/service"
)

type AuthorsHandler struct{ svc service.AuthorService }

func NewAuthorsHandler(svc service.AuthorService) *AuthorsHandler {
	return &AuthorsHandler{svc: svc}
}

func (h *AuthorsHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
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

func (h *AuthorsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateAuthorRequest
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

func (h *AuthorsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Author not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthorsHandler) List(c *gin.Context) {
	freelancersOnly := c.Query("freelancers") == "true"
	resp, err := h.svc.List(c.Request.Context(), freelancersOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list authors"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
