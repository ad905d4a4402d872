package router

import (
	"github.com/Gundeep-repos/Developer-Connector/internal/config"
	"github.com/Gundeep-repos/Developer-Connector/internal/handlers"
	"github.com/Gundeep-repos/Developer-Connector/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	// Handlers
	usersHandler := handlers.NewUsersHandler(cfg)
	authHandler := handlers.NewAuthHandler(cfg)
	profileHandler := handlers.NewProfileHandler(cfg)
	postHandler := handlers.NewPostHandler()

	authRequired := middleware.AuthRequired(cfg)

	api := r.Group("/api")

	// Public routes
	api.POST("/users", usersHandler.Register)                   // register, returns token
	api.POST("/auth", authHandler.Login)                        // login, returns token
	api.GET("/profile", profileHandler.List)                    // all profiles
	api.GET("/profile/user/:user_id", profileHandler.ByUser)    // one profile by user id
	api.GET("/profile/github/:username", profileHandler.Github) // proxied repo listing

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(authRequired)
	{
		authorized.GET("/auth", authHandler.Current) // current user

		authorized.GET("/profile/me", profileHandler.Me)                              // own profile
		authorized.POST("/profile", profileHandler.Upsert)                            // create or update profile
		authorized.DELETE("/profile", profileHandler.DeleteAccount)                   // delete profile + user + posts
		authorized.PUT("/profile/experience", profileHandler.AddExperience)           // add experience entry
		authorized.DELETE("/profile/experience/:exp_id", profileHandler.RemoveExperience) // remove experience entry
		authorized.PUT("/profile/education", profileHandler.AddEducation)             // add education entry
		authorized.DELETE("/profile/education/:edu_id", profileHandler.RemoveEducation) // remove education entry

		authorized.POST("/posts", postHandler.Create)        // create post
		authorized.GET("/posts", postHandler.List)           // all posts, newest first
		authorized.GET("/posts/:id", postHandler.Get)        // one post
		authorized.DELETE("/posts/:id", postHandler.Delete)  // delete own post
		authorized.PUT("/posts/like/:id", postHandler.Like)     // like, returns likes list
		authorized.PUT("/posts/unlike/:id", postHandler.Unlike) // unlike, returns likes list
		authorized.POST("/posts/comment/:id", postHandler.AddComment)                // add comment
		authorized.DELETE("/posts/comment/:id/:comment_id", postHandler.DeleteComment) // delete own comment
	}
}
