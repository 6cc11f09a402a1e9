package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	accountapp "account-service/internal/application"
	"account-service/pkg/response"
	"account-service/pkg/validation"
)

type AccountHandler struct {
	Svc    *accountapp.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *accountapp.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

// Requests validate non-emptiness only; email format and password strength
// are deliberately not enforced.
type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authenticateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, accountapp.ErrInvalidArgument):
			response.Error[any](c, http.StatusBadRequest, "name, email and password are required", nil)
		case errors.Is(err, accountapp.ErrEmailTaken):
			response.Error[any](c, http.StatusConflict, "email already registered", nil)
		default:
			h.Logger.WithError(err).Error("register failed")
			response.Error[any](c, http.StatusInternalServerError, "account creation failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"account_id": id}, "account registered")
}

func (h *AccountHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Missing credentials are not distinguishable from wrong ones.
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	id, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, accountapp.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("authenticate failed")
		response.Error[any](c, http.StatusInternalServerError, "authentication failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true, "account_id": id}, "authenticated")
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusNotFound, "account not found", nil)
		return
	}
	a, err := h.Svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, accountapp.ErrAccountNotFound) {
			response.Error[any](c, http.StatusNotFound, "account not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get profile failed")
		response.Error[any](c, http.StatusInternalServerError, "profile lookup failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"account_id": a.ID,
		"name":       a.Name,
		"email":      a.Email,
	}, "profile")
}

func (h *AccountHandler) UpdateName(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid account id", nil)
		return
	}
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.UpdateName(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, accountapp.ErrInvalidArgument):
			response.Error[any](c, http.StatusBadRequest, "account id and name are required", nil)
		case errors.Is(err, accountapp.ErrAccountNotFound):
			response.Error[any](c, http.StatusNotFound, "account not found", nil)
		default:
			h.Logger.WithError(err).Error("update name failed")
			response.Error[any](c, http.StatusInternalServerError, "name update failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"account_id": a.ID,
		"name":       a.Name,
		"email":      a.Email,
	}, "name updated")
}
