package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/founderspw/somanager/internal/invoice/domain"
)

func (s *Server) AssembleInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.Assemble(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.InvoicesIssued.Inc()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReopenOrder(c *gin.Context) {
	if err := s.invoiceSvc.Reopen(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.InvoicesVoided.Inc()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"reopened": true}})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query invoicedomain.ListRecordQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.ListRecords(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	record, err := s.invoiceSvc.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if record.PDFPath == "" {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.FileAttachment(record.PDFPath, record.Number+".pdf")
}

func (s *Server) GetInvoicingSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.invoicing.Get()})
}

func (s *Server) UpdateInvoicingSettings(c *gin.Context) {
	cfg := s.invoicing.Get()
	if err := c.ShouldBindJSON(&cfg); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if err := s.invoicing.Set(cfg); err != nil {
		AbortWithError(c, newValidationError("settings", "invalid_invoicing_settings", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cfg})
}
