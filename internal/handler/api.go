package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinelist/internal/middleware"
	"github.com/user/cinelist/internal/service"
	"github.com/user/cinelist/internal/utils"
)

// ==================== 电影发现（公开，纯转发）====================

// SearchMovies 搜索电影，空查询退回热门榜单
func (h *Handler) SearchMovies(c *gin.Context) {
	query := c.Query("query")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	raw, err := h.TMDB.Search(query, page)
	if err != nil {
		log.Printf("[TMDB] 搜索失败 (query=%q): %v", query, err)
		utils.InternalServerError(c, "从外部接口搜索电影失败")
		return
	}
	c.Data(200, "application/json; charset=utf-8", raw)
}

// MovieDetails 电影详情
func (h *Handler) MovieDetails(c *gin.Context) {
	id := c.Param("id")

	raw, err := h.TMDB.Details(id)
	if err != nil {
		log.Printf("[TMDB] 获取详情失败 (id=%s): %v", id, err)
		utils.InternalServerError(c, "从外部接口获取电影详情失败")
		return
	}
	c.Data(200, "application/json; charset=utf-8", raw)
}

// Recommendations 相关推荐；不带电影 ID 时返回本周趋势
func (h *Handler) Recommendations(c *gin.Context) {
	movieID := c.Param("movieId")

	raw, err := h.TMDB.Recommendations(movieID)
	if err != nil {
		log.Printf("[TMDB] 获取推荐失败 (movieId=%q): %v", movieID, err)
		utils.InternalServerError(c, "从外部接口获取推荐失败")
		return
	}
	c.Data(200, "application/json; charset=utf-8", raw)
}

// ==================== 收藏（需要登录）====================

// AddFavorite 添加收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	var input service.FavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "请求体格式不正确")
		return
	}

	favorites, err := h.Collections.AddFavorite(middleware.GetUserID(c), input)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.OK(c, "已添加到收藏", gin.H{"favoriteMovies": favorites})
}

// RemoveFavorite 移除收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 必须是数字")
		return
	}

	favorites, err := h.Collections.RemoveFavorite(middleware.GetUserID(c), tmdbID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.OK(c, "已从收藏移除", gin.H{"favoriteMovies": favorites})
}

// ==================== 片单（需要登录）====================

// createWatchlistRequest 创建片单入参
type createWatchlistRequest struct {
	Name string `json:"name"`
}

// CreateWatchlist 创建片单
func (h *Handler) CreateWatchlist(c *gin.Context) {
	var req createWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求体格式不正确")
		return
	}

	watchlists, err := h.Collections.CreateWatchlist(middleware.GetUserID(c), req.Name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, "片单创建成功", gin.H{"watchlists": watchlists})
}

// AddToWatchlist 向片单添加条目
func (h *Handler) AddToWatchlist(c *gin.Context) {
	watchlistID := c.Param("watchlistId")

	var input service.WatchlistMovieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "请求体格式不正确")
		return
	}

	watchlist, err := h.Collections.AddToWatchlist(middleware.GetUserID(c), watchlistID, input)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.OK(c, "已添加到片单", gin.H{"watchlist": watchlist})
}

// RemoveFromWatchlist 从片单移除条目
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	watchlistID := c.Param("watchlistId")
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 必须是数字")
		return
	}

	watchlist, err := h.Collections.RemoveFromWatchlist(middleware.GetUserID(c), watchlistID, tmdbID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.OK(c, "已从片单移除", gin.H{"watchlist": watchlist})
}
