package handlers

import (
	"net/http"

	"github.com/Gundeep-repos/Developer-Connector/internal/auth"
	"github.com/Gundeep-repos/Developer-Connector/internal/config"
	"github.com/Gundeep-repos/Developer-Connector/internal/db"
	"github.com/Gundeep-repos/Developer-Connector/internal/models"
	"github.com/Gundeep-repos/Developer-Connector/internal/utils"
	"github.com/Gundeep-repos/Developer-Connector/internal/validate"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	cfg *config.Config
}

func NewUsersHandler(cfg *config.Config) *UsersHandler {
	return &UsersHandler{cfg: cfg}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user with a gravatar snapshot and returns a signed
// token. POST /api/users
func (h *UsersHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := validate.Required(
		validate.Rule{Param: "name", Value: req.Name, Message: "Name is required"},
		validate.Rule{Param: "email", Value: req.Email, Message: "Please include a valid email"},
		validate.Rule{Param: "password", Value: req.Password, Message: "Please enter a password with 6 or more characters"},
	)
	if len(req.Password) > 0 && len(req.Password) < 6 {
		errs = append(errs, validate.FieldError{Param: "password", Msg: "Please enter a password with 6 or more characters"})
	}
	if len(errs) > 0 {
		ValidationError(c, errs)
		return
	}

	var existing models.User
	if err := db.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		JSONError(c, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		ServerError(c, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Avatar:   utils.GravatarURL(req.Email),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		ServerError(c, err)
		return
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenTTL)
	if err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
