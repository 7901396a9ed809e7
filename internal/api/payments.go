package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cakeries-backend/internal/apperr"
)

type paymentIntentRequest struct {
	TotalPrice float64 `json:"totalPrice" binding:"omitempty,gt=0"`
	OrderID    string  `json:"orderId"`
}

// createPaymentIntent charges the stored order total when orderId is given,
// otherwise the totalPrice from the body.
func (s *Server) createPaymentIntent(c *gin.Context) {
	ctx := c.Request.Context()
	var req paymentIntentRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	price := req.TotalPrice
	if req.OrderID != "" {
		order, err := s.store.GetOrder(ctx, req.OrderID)
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := s.authorizeOrder(c, order); err != nil {
			s.fail(c, err)
			return
		}
		if order.Paid {
			s.fail(c, fmt.Errorf("%w: order already paid", apperr.ErrConflict))
			return
		}
		price = order.TotalPrice
	}

	intent, err := s.payments.CreateIntent(ctx, price)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

func (s *Server) listPayments(c *gin.Context) {
	payments, err := s.store.ListPayments(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
