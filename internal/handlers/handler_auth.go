package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
	"github.com/ledgerkeep/ledgerkeep/internal/utils"
)

const oauthStateCookie = "oauth_state"

// authHandler handles registration, login, and the Google sign-in flow.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	oauthService portssvc.GoogleOAuthSvcFacade
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &authHandler{
		userService:  services.User,
		tokenService: services.Token,
		oauthService: services.GoogleOAuth,
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/google/login", h.googleLogin)
		auth.GET("/google/callback", h.googleCallback)
	}
}

// register godoc
// @Summary Register a user
// @Description Creates a local user with an email and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and returns an access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}

	h.respondWithToken(c, user)
}

// googleLogin godoc
// @Summary Start Google sign-in
// @Description Redirects to Google's consent screen with a state cookie
// @Tags auth
// @Success 307 "Redirect to Google"
// @Router /auth/google/login [get]
func (h *authHandler) googleLogin(c *gin.Context) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate oauth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start sign-in"})
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.AuthCodeURL(state))
}

// googleCallback godoc
// @Summary Complete Google sign-in
// @Description Validates the state, exchanges the code, and returns an access token
// @Tags auth
// @Produce  json
// @Param   code query string true "Authorization code"
// @Param   state query string true "State value from the login redirect"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "State mismatch or invalid code"
// @Router /auth/google/callback [get]
func (h *authHandler) googleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	info, err := h.oauthService.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed"})
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), *info)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve Google user")
		return
	}

	h.respondWithToken(c, user)
}

func (h *authHandler) respondWithToken(c *gin.Context, user *domain.User) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue access token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}
