package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leonard1379/MyDjangoProject/internal/controller"
	"github.com/Leonard1379/MyDjangoProject/internal/middleware"
	"github.com/Leonard1379/MyDjangoProject/internal/polls"
	"github.com/Leonard1379/MyDjangoProject/internal/templates"
)

// NewRouter builds the engine with HTML pages under /polls/ and the JSON API under /api.
func NewRouter(s *polls.Service, jwtSecret string) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	RegisterRoutes(r, s, jwtSecret)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, s *polls.Service, jwtSecret string) {
	pc := controller.NewPollController(s)
	h := NewHandler(s, jwtSecret)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/polls/")
	})

	pages := r.Group("/polls")
	{
		pages.GET("/", pc.Index)
		pages.GET("/:id/", pc.Detail)
		pages.GET("/:id/results/", pc.Results)
		pages.POST("/:id/vote/", pc.Vote)
	}

	r.POST("/login", h.LoginHandler)

	auth := r.Group("/api")
	auth.Use(middleware.JWTAuthMiddleware(jwtSecret))
	{
		auth.GET("/questions", h.ListQuestionsHandler)
		auth.GET("/questions/:id", h.GetQuestionByID)

		admin := auth.Group("", middleware.RequireAdmin())
		admin.POST("/questions", h.CreateQuestionHandler)
		admin.POST("/questions/:id/choices", h.AddChoiceHandler)
	}
}
