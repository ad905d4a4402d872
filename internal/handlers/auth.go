package handlers

import (
	"net/http"

	"github.com/Gundeep-repos/Developer-Connector/internal/auth"
	"github.com/Gundeep-repos/Developer-Connector/internal/config"
	"github.com/Gundeep-repos/Developer-Connector/internal/db"
	"github.com/Gundeep-repos/Developer-Connector/internal/middleware"
	"github.com/Gundeep-repos/Developer-Connector/internal/models"
	"github.com/Gundeep-repos/Developer-Connector/internal/utils"
	"github.com/Gundeep-repos/Developer-Connector/internal/validate"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email+password for a signed token. The same message is
// returned for an unknown email and a wrong password. POST /api/auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := validate.Required(
		validate.Rule{Param: "email", Value: req.Email, Message: "Please include a valid email"},
		validate.Rule{Param: "password", Value: req.Password, Message: "Password is required"},
	)
	if len(errs) > 0 {
		ValidationError(c, errs)
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		JSONError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenTTL)
	if err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Current returns the caller's user record, password excluded by the model's
// json tags. GET /api/auth
func (h *AuthHandler) Current(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
