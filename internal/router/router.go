package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinelist/internal/handler"
	"github.com/user/cinelist/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ==================== 账户 ====================
	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
	}

	profile := api.Group("/users")
	profile.Use(middleware.RequireAuth(h.Config.AppSecret, h.Accounts))
	{
		profile.GET("/profile", h.Profile)
		profile.PUT("/profile", h.UpdateProfile)
	}

	// ==================== 电影发现（公开，转发 TMDB）====================
	movies := api.Group("/movies")
	{
		movies.GET("/search", h.SearchMovies)
		movies.GET("/recommendations", h.Recommendations)
		movies.GET("/recommendations/:movieId", h.Recommendations)
		movies.GET("/:id", h.MovieDetails)
	}

	// ==================== 收藏与片单（需要登录）====================
	private := api.Group("/movies")
	private.Use(middleware.RequireAuth(h.Config.AppSecret, h.Accounts))
	{
		private.POST("/favorites", h.AddFavorite)
		private.DELETE("/favorites/:tmdbId", h.RemoveFavorite)

		private.POST("/watchlists", h.CreateWatchlist)
		private.POST("/watchlists/:watchlistId/entries", h.AddToWatchlist)
		private.DELETE("/watchlists/:watchlistId/entries/:tmdbId", h.RemoveFromWatchlist)
	}
}
