package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/secondchance/internal/api/dto"
	"github.com/martijn/secondchance/internal/api/middleware"
	"github.com/martijn/secondchance/internal/core/service"
)

const emailHeader = "Email"

type AuthHandler struct {
	accounts      *service.AccountService
	logger        *slog.Logger
	secureCookies bool
}

// NewAuthHandler builds the account endpoints. secureCookies marks the
// authToken cookie Secure and is enabled in production.
func NewAuthHandler(accounts *service.AccountService, logger *slog.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

// Register handles POST /api/auth/register
//
//	@Summary	Register a new user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.RegisterRequest	true	"New account"
//	@Success	201		{object}	dto.AuthResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	res, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.setAuthCookie(c, res.Token)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message:   "User registered successfully",
		UserID:    res.UserID,
		Token:     res.Token,
		UserName:  res.FirstName,
		UserEmail: res.Email,
	})
}

// Login handles POST /api/auth/login
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	dto.AuthResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	res, err := h.accounts.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.setAuthCookie(c, res.Token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     res.Token,
		UserName:  res.FirstName,
		UserEmail: res.Email,
	})
}

// Update handles PUT /api/auth/update
//
//	@Summary	Update the current user's name
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		Email	header		string				true	"Account email"
//	@Param		request	body		dto.UpdateRequest	true	"Current password and new name"
//	@Success	200		{object}	dto.AuthResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/api/auth/update [put]
func (h *AuthHandler) Update(c *gin.Context) {
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	res, err := h.accounts.UpdateCredentials(c.Request.Context(), service.UpdateCredentialsInput{
		Email:           c.GetHeader(emailHeader),
		CurrentPassword: req.Password,
		FirstName:       req.Name,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.setAuthCookie(c, res.Token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     res.Token,
		UserName:  res.FirstName,
		UserEmail: res.Email,
	})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AuthCookieName, token, int(service.TokenExpiration.Seconds()), "/", "", h.secureCookies, true)
}
