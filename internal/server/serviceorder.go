package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
)

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		CustomerID      string `form:"customer_id"`
		AssignedStaffID string `form:"assigned_staff_id"`
		Status          string `form:"status"`
		ScheduledFrom   string `form:"scheduled_from"`
		ScheduledTo     string `form:"scheduled_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filter := sodomain.ListOrderFilter{
		CustomerID:      strings.TrimSpace(query.CustomerID),
		AssignedStaffID: strings.TrimSpace(query.AssignedStaffID),
	}

	if query.Status != "" {
		status, err := sodomain.ParseStatus(query.Status)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		filter.Status = status
	}

	from, err := parseOptionalTime(query.ScheduledFrom)
	if err != nil {
		AbortWithError(c, newValidationError("scheduled_from", "invalid_scheduled_from", "invalid scheduled_from"))
		return
	}
	filter.ScheduledFrom = from

	to, err := parseOptionalTime(query.ScheduledTo)
	if err != nil {
		AbortWithError(c, newValidationError("scheduled_to", "invalid_scheduled_to", "invalid scheduled_to"))
		return
	}
	filter.ScheduledTo = to

	resp, err := s.orderSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req sodomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var req sodomain.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.orderSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) SetOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	status, err := sodomain.ParseStatus(req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.orderSvc.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AssignOrder(c *gin.Context) {
	var req struct {
		StaffID string `json:"staff_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Assign(c.Request.Context(), c.Param("id"), req.StaffID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UnassignOrder(c *gin.Context) {
	resp, err := s.orderSvc.Unassign(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddOrderLine(c *gin.Context) {
	var req sodomain.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.OrderID = c.Param("id")

	resp, err := s.orderSvc.AddLine(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveOrderLine(c *gin.Context) {
	err := s.orderSvc.RemoveLine(c.Request.Context(), c.Param("id"), c.Param("lineId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func parseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		d, derr := time.Parse("2006-01-02", raw)
		if derr != nil {
			return nil, err
		}
		t = d
	}
	return &t, nil
}
