package handlers

import (
	"log"
	"net/http"

	"github.com/Gundeep-repos/Developer-Connector/internal/validate"

	"github.com/gin-gonic/gin"
)

// JSONError writes the standard {"msg": ...} error body.
func JSONError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"msg": msg})
}

// ServerError logs the cause and returns a generic 500. The detail never
// reaches the caller.
func ServerError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
}

// ValidationError reports every failed field together as a 400.
func ValidationError(c *gin.Context, errs []validate.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}
