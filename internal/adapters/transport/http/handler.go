package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/dto"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/middleware"
	authsvc "github.com/pedrohqb/ecommerce-backend/internal/app/auth/service"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/token"
	usersvc "github.com/pedrohqb/ecommerce-backend/internal/app/user/service"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"go.uber.org/zap"
)

var errMissingAuth = errors.New("missing authentication")

type Handler struct {
	auth   authsvc.Service
	users  usersvc.Service
	tokens token.Issuer
	log    *zap.Logger
}

func NewHandler(auth authsvc.Service, users usersvc.Service, tokens token.Issuer, log *zap.Logger) *Handler {
	return &Handler{auth: auth, users: users, tokens: tokens, log: log}
}

// RegisterRoutes wires every endpoint onto the router. Routes under
// /users require a valid bearer token.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/code", h.RequestCode)
	r.POST("/auth/reset", h.ConfirmCode)

	authed := r.Group("/users", middleware.RequireAuth(h.tokens))
	authed.GET("", h.ListUsers)
	authed.GET("/me", h.Me)
	authed.PATCH("/me/name", h.UpdateName)
	authed.PATCH("/me/password", h.UpdatePassword)
	authed.POST("/me/email/code", h.RequestEmailChange)
	authed.POST("/me/email/confirm", h.ConfirmEmailChange)
	authed.GET("/me/addresses", h.ListAddresses)
	authed.POST("/me/addresses", h.CreateAddress)
	authed.GET("/me/addresses/:id", h.GetAddress)
	authed.PUT("/me/addresses/:id", h.UpdateAddress)
	authed.DELETE("/me/addresses/:id", h.DeleteAddress)
}

func (h *Handler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "user registered successfully",
		"id":      id,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "login successful",
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt.Unix(),
	})
}

func (h *Handler) RequestCode(c *gin.Context) {
	var body dto.RequestCodeDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.RequestCode(c.Request.Context(), body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "code sent by email"})
}

func (h *Handler) ConfirmCode(c *gin.Context) {
	var body dto.ConfirmCodeDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.ConfirmCode(c.Request.Context(), body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "change applied successfully"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}

// handleError maps the error taxonomy onto statuses and stable messages.
// Internal detail goes to the log, never to the caller.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case apperrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case apperrors.IsCodeInvalidOrExpired(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid or expired code"})
	case apperrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
	case apperrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "email already in use"})
	default:
		h.log.Error("internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}
