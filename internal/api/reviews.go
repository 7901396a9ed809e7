package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/auth"
	"cakeries-backend/internal/model"
)

type createReviewRequest struct {
	Name    string `json:"name" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type upsertProfileRequest struct {
	Education string `json:"education"`
	Location  string `json:"location"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin" binding:"omitempty,url"`
}

func (s *Server) listReviews(c *gin.Context) {
	reviews, err := s.store.ListReviews(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) createReview(c *gin.Context) {
	var req createReviewRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	result, err := s.store.CreateReview(c.Request.Context(), model.Review{
		Name:    req.Name,
		Email:   auth.Identity(c),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getProfile(c *gin.Context) {
	email, err := bindEmail(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	profile, err := s.store.GetProfile(c.Request.Context(), email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) upsertProfile(c *gin.Context) {
	email, err := bindEmail(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if email != auth.Identity(c) {
		s.fail(c, apperr.ErrForbidden)
		return
	}
	var req upsertProfileRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	result, err := s.store.UpsertProfile(c.Request.Context(), model.UserProfile{
		Email:     email,
		Education: req.Education,
		Location:  req.Location,
		Phone:     req.Phone,
		LinkedIn:  req.LinkedIn,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
