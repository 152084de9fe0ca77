package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjwaight/gu/internal/apierror"
	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/service"
)

// TaxonomyHandler serves topics, categories and regions. The three share one
// request shape, so the handlers delegate to a pair of small helpers.
type TaxonomyHandler struct{ svc service.TaxonomyService }

func NewTaxonomyHandler(svc service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{svc: svc}
}

type taxonomyCreate func(ctx context.Context, req dto.CreateTaxonomyRequest) (*dto.TaxonomyResponse, error)
type taxonomyList func(ctx context.Context) ([]dto.TaxonomyResponse, error)

func (h *TaxonomyHandler) CreateTopic(c *gin.Context)    { taxonomyCreateHandler(c, h.svc.CreateTopic) }
func (h *TaxonomyHandler) ListTopics(c *gin.Context)     { taxonomyListHandler(c, h.svc.ListTopics) }
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) { taxonomyCreateHandler(c, h.svc.CreateCategory) }
func (h *TaxonomyHandler) ListCategories(c *gin.Context) { taxonomyListHandler(c, h.svc.ListCategories) }
func (h *TaxonomyHandler) CreateRegion(c *gin.Context)   { taxonomyCreateHandler(c, h.svc.CreateRegion) }
func (h *TaxonomyHandler) ListRegions(c *gin.Context)    { taxonomyListHandler(c, h.svc.ListRegions) }

func taxonomyCreateHandler(c *gin.Context, create taxonomyCreate) {
	var req dto.CreateTaxonomyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func taxonomyListHandler(c *gin.Context, list taxonomyList) {
	resp, err := list(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
