package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cakeries-backend/internal/model"
)

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Image       string  `json:"image" binding:"omitempty,url"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"min=0"`
	MinOrder    int     `json:"minOrder" binding:"min=0"`
}

type updateStockRequest struct {
	Stock *int `json:"stock" binding:"required,min=0"`
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.store.ListProducts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.store.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// updateStock sets the stock count after an order; nothing else changes.
func (s *Server) updateStock(c *gin.Context) {
	var req updateStockRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	result, err := s.store.UpdateStock(c.Request.Context(), c.Param("id"), *req.Stock)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	result, err := s.store.CreateProduct(c.Request.Context(), model.Product{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		MinOrder:    req.MinOrder,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) deleteProduct(c *gin.Context) {
	result, err := s.store.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
