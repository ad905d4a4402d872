package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Gundeep-repos/Developer-Connector/internal/config"
	"github.com/Gundeep-repos/Developer-Connector/internal/db"
	"github.com/Gundeep-repos/Developer-Connector/internal/middleware"
	"github.com/Gundeep-repos/Developer-Connector/internal/models"
	"github.com/Gundeep-repos/Developer-Connector/internal/services"
	"github.com/Gundeep-repos/Developer-Connector/internal/utils"
	"github.com/Gundeep-repos/Developer-Connector/internal/validate"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const profileListCacheKey = "profiles:all"

type ProfileHandler struct {
	github *services.GithubService
}

func NewProfileHandler(cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		github: services.NewGithubService(cfg),
	}
}

// profileQuery joins the owning user and the sub-lists, newest entries
// first to match head-insertion.
func profileQuery() *gorm.DB {
	return db.DB.Preload("User").
		Preload("Experience", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id DESC")
		}).
		Preload("Education", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id DESC")
		})
}

func loadProfileByUser(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := profileQuery().Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Me returns the caller's profile. GET /api/profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := loadProfileByUser(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "There is no profile for this user")
			return
		}
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// Upsert creates the caller's profile or applies the present fields to the
// existing one. Absent fields never clear stored values. POST /api/profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := validate.Required(
		validate.Rule{Param: "status", Value: req.Status, Message: "Status is required"},
		validate.Rule{Param: "skills", Value: req.Skills, Message: "Skills are required"},
	)
	if len(errs) > 0 {
		ValidationError(c, errs)
		return
	}

	userID := middleware.CurrentUserID(c)

	var profile models.Profile
	err := db.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ServerError(c, err)
		return
	}
	profile.UserID = userID

	applyProfileFields(&profile, &req)

	if err := db.DB.Save(&profile).Error; err != nil {
		ServerError(c, err)
		return
	}
	utils.GetCache().Delete(profileListCacheKey)

	updated, err := loadProfileByUser(userID)
	if err != nil {
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// applyProfileFields copies only the fields present in the request, so a
// partial update leaves the rest of the profile untouched.
func applyProfileFields(profile *models.Profile, req *profileRequest) {
	if req.Company != "" {
		profile.Company = req.Company
	}
	if req.Website != "" {
		profile.Website = req.Website
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Status != "" {
		profile.Status = req.Status
	}
	if req.GithubUsername != "" {
		profile.GithubUsername = req.GithubUsername
	}
	if req.Skills != "" {
		profile.Skills = utils.SplitSkills(req.Skills)
	}
	if req.Youtube != "" {
		profile.Social.Youtube = req.Youtube
	}
	if req.Twitter != "" {
		profile.Social.Twitter = req.Twitter
	}
	if req.Facebook != "" {
		profile.Social.Facebook = req.Facebook
	}
	if req.Linkedin != "" {
		profile.Social.Linkedin = req.Linkedin
	}
	if req.Instagram != "" {
		profile.Social.Instagram = req.Instagram
	}
}

// List returns every profile joined with its owner. Public, briefly cached.
// GET /api/profile
func (h *ProfileHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(profileListCacheKey); cached != nil {
		if profiles, ok := cached.([]models.Profile); ok {
			c.JSON(http.StatusOK, profiles)
			return
		}
	}

	var profiles []models.Profile
	if err := profileQuery().Find(&profiles).Error; err != nil {
		ServerError(c, err)
		return
	}

	utils.GetCache().Set(profileListCacheKey, profiles, time.Minute)
	c.JSON(http.StatusOK, profiles)
}

// ByUser returns one user's profile. Public. GET /api/profile/user/:user_id
func (h *ProfileHandler) ByUser(c *gin.Context) {
	profile, err := loadProfileByUser(utils.StringToUint(c.Param("user_id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "Profile not found")
			return
		}
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's profile, posts and user record in one
// transaction. DELETE /api/profile
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Remove the user's posts together with their likes and comments
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		// Likes and comments the user left on other posts
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		ServerError(c, err)
		return
	}

	utils.GetCache().Delete(profileListCacheKey)
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

type experienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// AddExperience prepends an experience entry to the caller's profile and
// returns the full profile. PUT /api/profile/experience
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := validate.Required(
		validate.Rule{Param: "title", Value: req.Title, Message: "Title is required"},
		validate.Rule{Param: "company", Value: req.Company, Message: "Company is required"},
	)
	if req.From == nil {
		errs = append(errs, validate.FieldError{Param: "from", Msg: "From date is required"})
	}
	if len(errs) > 0 {
		ValidationError(c, errs)
		return
	}

	userID := middleware.CurrentUserID(c)
	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		JSONError(c, http.StatusNotFound, "There is no profile for this user")
		return
	}

	exp := models.Experience{
		ProfileID:   profile.ID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        *req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	if err := db.DB.Create(&exp).Error; err != nil {
		ServerError(c, err)
		return
	}

	h.respondFullProfile(c, userID)
}

// RemoveExperience deletes one entry by id from the caller's profile.
// DELETE /api/profile/experience/:exp_id
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		JSONError(c, http.StatusNotFound, "There is no profile for this user")
		return
	}

	res := db.DB.Where("id = ? AND profile_id = ?", utils.StringToUint(c.Param("exp_id")), profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "Experience not found")
		return
	}

	h.respondFullProfile(c, userID)
}

type educationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         *time.Time `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// AddEducation prepends an education entry to the caller's profile.
// PUT /api/profile/education
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	errs := validate.Required(
		validate.Rule{Param: "school", Value: req.School, Message: "School is required"},
		validate.Rule{Param: "degree", Value: req.Degree, Message: "Degree is required"},
		validate.Rule{Param: "fieldofstudy", Value: req.FieldOfStudy, Message: "Field of study is required"},
	)
	if req.From == nil {
		errs = append(errs, validate.FieldError{Param: "from", Msg: "From date is required"})
	}
	if len(errs) > 0 {
		ValidationError(c, errs)
		return
	}

	userID := middleware.CurrentUserID(c)
	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		JSONError(c, http.StatusNotFound, "There is no profile for this user")
		return
	}

	edu := models.Education{
		ProfileID:    profile.ID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         *req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	if err := db.DB.Create(&edu).Error; err != nil {
		ServerError(c, err)
		return
	}

	h.respondFullProfile(c, userID)
}

// RemoveEducation deletes one entry by id from the caller's profile.
// DELETE /api/profile/education/:edu_id
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		JSONError(c, http.StatusNotFound, "There is no profile for this user")
		return
	}

	res := db.DB.Where("id = ? AND profile_id = ?", utils.StringToUint(c.Param("edu_id")), profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "Education not found")
		return
	}

	h.respondFullProfile(c, userID)
}

// Github proxies the user's repository listing. Public.
// GET /api/profile/github/:username
func (h *ProfileHandler) Github(c *gin.Context) {
	repos, err := h.github.ListRepos(c.Param("username"))
	if err != nil {
		if errors.Is(err, services.ErrNoGithubProfile) {
			JSONError(c, http.StatusNotFound, "No GitHub profile found")
			return
		}
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

func (h *ProfileHandler) respondFullProfile(c *gin.Context, userID uint) {
	profile, err := loadProfileByUser(userID)
	if err != nil {
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
