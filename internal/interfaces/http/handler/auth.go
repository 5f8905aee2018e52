package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/mrtoldo/backend/internal/application/identity"
	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/mrtoldo/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles login, logout and the current user
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler. An empty cookie name disables the session cookie.
func NewAuthHandler(authService *identityapp.AuthService, cookie config.CookieConfig) *AuthHandler {
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// LogoutResponse confirms the session was closed
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password. The token is returned and set as the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=identityapp.LoginResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, time.Until(result.ExpiresAt))
	h.Success(c, result)
}

// Logout godoc
// @Summary      User logout
// @Description  Revokes the session token and clears the session cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=LogoutResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, "", -time.Second)
	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID == 0 {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// setSessionCookie writes the session cookie; a negative maxAge deletes it
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge time.Duration) {
	if h.cookie.Name == "" {
		return
	}
	seconds := int(maxAge.Seconds())
	if maxAge < 0 {
		seconds = -1
	}
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, token, seconds, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func sameSiteMode(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
