package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/auth"
	"cakeries-backend/internal/metrics"
	"cakeries-backend/internal/model"
	"cakeries-backend/internal/payment"
	"cakeries-backend/internal/store"
)

// createOrderRequest values are stored as given; the total is not recomputed.
type createOrderRequest struct {
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	CustomerName  string  `json:"customerName"`
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity" binding:"omitempty,min=1"`
	TotalPrice    float64 `json:"totalPrice" binding:"required,gt=0"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
}

type confirmPaymentRequest struct {
	TransactionID string  `json:"transactionId" binding:"required"`
	Amount        float64 `json:"amount" binding:"omitempty,gt=0"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.store.CreateOrder(c.Request.Context(), model.Order{
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		TotalPrice:    req.TotalPrice,
		Address:       req.Address,
		Phone:         req.Phone,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// listOrders only returns orders owned by the verified caller.
func (s *Server) listOrders(c *gin.Context) {
	owner := c.Query("customer")
	if owner == "" {
		owner = c.Query("customerEmail")
	}
	if owner != auth.Identity(c) {
		s.fail(c, apperr.ErrForbidden)
		return
	}

	orders, err := s.store.ListOrdersByOwner(c.Request.Context(), owner)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.store.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.authorizeOrder(c, order); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// cancelOrder deletes an unpaid order. An unknown id reports a zero count.
func (s *Server) cancelOrder(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	order, err := s.store.GetOrder(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusOK, store.DeleteResult{})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.authorizeOrder(c, order); err != nil {
		s.fail(c, err)
		return
	}
	if order.Paid {
		s.fail(c, fmt.Errorf("%w: paid orders cannot be cancelled", apperr.ErrConflict))
		return
	}

	result, err := s.store.DeleteOrder(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if result.DeletedCount == 0 {
		// paid between the read above and the delete
		if current, err := s.store.GetOrder(ctx, id); err == nil && current.Paid {
			s.fail(c, fmt.Errorf("%w: paid orders cannot be cancelled", apperr.ErrConflict))
			return
		}
	}
	c.JSON(http.StatusOK, result)
}

// confirmPayment records the payment and flips the order to paid.
func (s *Server) confirmPayment(c *gin.Context) {
	ctx := c.Request.Context()
	var req confirmPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	order, err := s.store.GetOrder(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.authorizeOrder(c, order); err != nil {
		s.fail(c, err)
		return
	}

	amount := req.Amount
	if amount == 0 {
		amount = order.TotalPrice
	}
	result, err := s.payments.Confirm(ctx, payment.Confirmation{
		OrderID:       order.ID.Hex(),
		TransactionID: req.TransactionID,
		Amount:        amount,
		CustomerEmail: order.CustomerEmail,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if result.ModifiedCount > 0 {
		metrics.PaymentConfirmed()
	}
	c.JSON(http.StatusOK, result)
}

// authorizeOrder allows the order's owner and admins.
func (s *Server) authorizeOrder(c *gin.Context, order model.Order) error {
	email := auth.Identity(c)
	if order.OwnedBy(email) {
		return nil
	}
	isAdmin, err := auth.IsAdmin(c.Request.Context(), s.roles, email)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperr.ErrForbidden
	}
	return nil
}
