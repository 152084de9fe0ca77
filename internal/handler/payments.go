package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjwaight/gu/internal/apierror"
	"github.com/sjwaight/gu/internal/batch"
	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/service"
)

// PaymentsHandler serves funds, commissions, invoices and the reconciliation
// trigger.
type PaymentsHandler struct {
	taxonomy    service.TaxonomyService
	commissions service.CommissionService
	invoices    service.InvoiceService
	processor   *batch.Processor
}

func NewPaymentsHandler(
	taxonomy service.TaxonomyService,
	commissions service.CommissionService,
	invoices service.InvoiceService,
	processor *batch.Processor,
) *PaymentsHandler {
	return &PaymentsHandler{
		taxonomy:    taxonomy,
		commissions: commissions,
		invoices:    invoices,
		processor:   processor,
	}
}

// ── Funds ───────────────────────────────────────────────────────────────────

func (h *PaymentsHandler) CreateFund(c *gin.Context) {
	var req dto.CreateFundRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.taxonomy.CreateFund(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PaymentsHandler) ListFunds(c *gin.Context) {
	resp, err := h.taxonomy.ListFunds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list funds"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Commissions ─────────────────────────────────────────────────────────────

func (h *PaymentsHandler) CreateCommission(c *gin.Context) {
	var req dto.CreateCommissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.commissions.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PaymentsHandler) UpdateCommission(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCommissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.commissions.Update(c.Request.Context(), id, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrInvoicePaid {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentsHandler) GetCommission(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.commissions.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Commission not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentsHandler) ListCommissions(c *gin.Context) {
	resp, err := h.commissions.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list commissions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Invoices ────────────────────────────────────────────────────────────────

func (h *PaymentsHandler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentsHandler) ListInvoices(c *gin.Context) {
	var filter dto.InvoiceFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.invoices.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentsHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateInvoiceStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.invoices.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentsHandler) InvoicePDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	path, err := h.invoices.RenderPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "remittance-advice.pdf")
}

// ProcessInvoices runs the reconciliation batch on demand. The same steps run
// from the process-invoices command; per-record failures are counted in the
// summary rather than failing the request.
func (h *PaymentsHandler) ProcessInvoices(c *gin.Context) {
	summary, err := h.processor.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"summary": summary,
			"error":   "one or more steps could not run to completion",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
