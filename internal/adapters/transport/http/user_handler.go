package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/dto"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/middleware"
)

func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}

	profile, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user found", "user": profile})
}

func (h *Handler) ListUsers(c *gin.Context) {
	profiles, err := h.users.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "users found", "users": profiles})
}

func (h *Handler) UpdateName(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}

	var body dto.UpdateNameDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.UpdateName(c.Request.Context(), userID, body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "name updated successfully"})
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}

	var body dto.UpdatePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), userID, body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated successfully"})
}

func (h *Handler) RequestEmailChange(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}

	var body dto.EmailChangeRequestDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.RequestEmailChange(c.Request.Context(), userID, body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "code sent to the new email"})
}

func (h *Handler) ConfirmEmailChange(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}

	var body dto.EmailChangeConfirmDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.ConfirmEmailChange(c.Request.Context(), userID, body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "email updated successfully"})
}

func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}

	addrs, err := h.users.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "addresses found", "addresses": addrs})
}

func (h *Handler) GetAddress(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}
	addressID, err := pathID(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	addr, err := h.users.GetAddress(c.Request.Context(), userID, addressID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "address found", "address": addr})
}

func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}

	var body dto.AddressDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.users.CreateAddress(c.Request.Context(), userID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "address created successfully", "id": id})
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}
	addressID, err := pathID(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	var body dto.AddressDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.UpdateAddress(c.Request.Context(), userID, addressID, body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "address updated successfully"})
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		badRequest(c, errMissingAuth)
		return
	}
	addressID, err := pathID(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.users.DeleteAddress(c.Request.Context(), userID, addressID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "address deleted successfully"})
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
