package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// AuthController handles back-office authentication
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login authenticates an admin and returns a bearer token
// @Summary Admin login
// @Description Authenticates an active admin with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid username or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// Me returns the admin behind the bearer token
// @Summary Current admin
// @Description Returns the authenticated admin
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CurrentAdminResponse} "Current admin"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /Auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.CurrentAdmin(ctx, claims)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
