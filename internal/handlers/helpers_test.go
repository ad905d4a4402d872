package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gundeep-repos/Developer-Connector/internal/auth"
	"github.com/Gundeep-repos/Developer-Connector/internal/config"
	"github.com/Gundeep-repos/Developer-Connector/internal/db"
	"github.com/Gundeep-repos/Developer-Connector/internal/middleware"
	"github.com/Gundeep-repos/Developer-Connector/internal/models"
	"github.com/Gundeep-repos/Developer-Connector/internal/router"
	"github.com/Gundeep-repos/Developer-Connector/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testCfg = &config.Config{
	JWTSecret: "test-secret",
	TokenTTL:  time.Hour,
}

// setupServer wires the full route table against a fresh in-memory database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	db.DB = gdb

	r := gin.New()
	router.RegisterRoutes(r, testCfg)
	return r
}

// createUser inserts a user directly and returns it with a valid token.
func createUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Avatar:   utils.GravatarURL(email),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.GenerateToken(testCfg.JWTSecret, user.ID, testCfg.TokenTTL)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

// doRequest performs a JSON request, attaching the token when non-empty.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func postPath(id uint) string {
	return fmt.Sprintf("/api/posts/%d", id)
}

func likePath(id uint) string {
	return fmt.Sprintf("/api/posts/like/%d", id)
}

func unlikePath(id uint) string {
	return fmt.Sprintf("/api/posts/unlike/%d", id)
}

func commentPath(id uint) string {
	return fmt.Sprintf("/api/posts/comment/%d", id)
}

func deleteCommentPath(postID, commentID uint) string {
	return fmt.Sprintf("/api/posts/comment/%d/%d", postID, commentID)
}
