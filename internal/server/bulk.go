package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bulkdomain "github.com/founderspw/somanager/internal/bulk/domain"
)

func (s *Server) ApplyBulkAction(c *gin.Context) {
	var req struct {
		OrderIDs []string          `json:"order_ids"`
		Action   bulkdomain.Action `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bulkSvc.Apply(c.Request.Context(), req.OrderIDs, req.Action)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.BulkActions.Inc()
	s.metrics.BulkActionItems.WithLabelValues("ok").Add(float64(resp.Succeeded))
	s.metrics.BulkActionItems.WithLabelValues("failed").Add(float64(resp.Failed))

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
