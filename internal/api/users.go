package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/auth"
	"cakeries-backend/internal/model"
	"cakeries-backend/internal/store"
)

type emailURI struct {
	Email string `uri:"email" binding:"required,email"`
}

type upsertUserRequest struct {
	Name     string `json:"name" binding:"max=200"`
	PhotoURL string `json:"photoURL" binding:"omitempty,url"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

func bindEmail(c *gin.Context) (string, error) {
	var uri emailURI
	if err := c.ShouldBindUri(&uri); err != nil {
		return "", invalid(err)
	}
	return uri.Email, nil
}

// upsertUser creates or updates the user keyed by email and issues a token.
// Once a password is stored for the email, the same password is required.
func (s *Server) upsertUser(c *gin.Context) {
	ctx := c.Request.Context()
	email, err := bindEmail(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req upsertUserRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	fields := store.UserFields{Name: req.Name, PhotoURL: req.PhotoURL}

	existing, err := s.store.FindUser(ctx, email)
	switch {
	case err == nil && existing.PasswordHash != "":
		if !auth.CheckPassword(existing.PasswordHash, req.Password) {
			s.fail(c, fmt.Errorf("%w: wrong password", apperr.ErrForbidden))
			return
		}
	case err == nil || errors.Is(err, apperr.ErrNotFound):
		if req.Password != "" {
			if fields.PasswordHash, err = auth.HashPassword(req.Password); err != nil {
				s.fail(c, err)
				return
			}
		}
	default:
		s.fail(c, err)
		return
	}

	result, err := s.store.UpsertUser(ctx, email, fields)
	if err != nil {
		s.fail(c, err)
		return
	}
	token, err := s.tokens.Sign(email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "token": token})
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.store.ListUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) checkAdmin(c *gin.Context) {
	email, err := bindEmail(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	isAdmin, err := auth.IsAdmin(c.Request.Context(), s.roles, email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": isAdmin})
}

func (s *Server) makeAdmin(c *gin.Context) {
	ctx := c.Request.Context()
	email, err := bindEmail(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	result, err := s.store.SetRole(ctx, email, model.RoleAdmin)
	if err != nil {
		s.fail(c, err)
		return
	}
	if s.roleCache != nil {
		s.roleCache.Invalidate(ctx, email)
	}
	s.log.Info().Str("email", email).Str("granted_by", auth.Identity(c)).Msg("admin role granted")
	c.JSON(http.StatusOK, result)
}
