package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/cinelist/internal/config"
	"github.com/user/cinelist/internal/middleware"
	"github.com/user/cinelist/internal/model"
	"github.com/user/cinelist/internal/service"
	"github.com/user/cinelist/internal/utils"
)

// AccountRepo 账户存取能力（repository.UserRepository 实现）
type AccountRepo interface {
	Create(email, username, password string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByID(id int) (*model.User, error)
	CheckPassword(user *model.User, password string) bool
	Save(user *model.User) error
	UpdatePassword(user *model.User, newPassword string) error
}

// Handler HTTP 处理器
type Handler struct {
	Accounts    AccountRepo
	Config      *config.Config
	Collections *service.CollectionService
	TMDB        *service.TMDBService
}

// NewHandler 创建处理器
func NewHandler(accounts AccountRepo, cfg *config.Config) *Handler {
	return &Handler{
		Accounts:    accounts,
		Config:      cfg,
		Collections: service.NewCollectionService(accounts),
		TMDB:        service.NewTMDBService(cfg),
	}
}

// registerRequest 注册入参
type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 注册处理
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请填写用户名、邮箱和密码")
		return
	}

	// 检查邮箱是否已被注册
	existing, err := h.Accounts.FindByEmail(req.Email)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if existing != nil {
		utils.Error(c, 409, "该邮箱已被注册")
		return
	}

	user, err := h.Accounts.Create(req.Email, req.Username, req.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, "注册成功", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

// loginRequest 登录入参
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录处理
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请填写邮箱和密码")
		return
	}

	user, err := h.Accounts.FindByEmail(req.Email)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	// 账户不存在和密码错误给同一个提示
	if user == nil || !h.Accounts.CheckPassword(user, req.Password) {
		utils.BadRequest(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.OK(c, "登录成功", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

// Profile 当前账户资料（含收藏和片单）
func (h *Handler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.Unauthorized(c)
		return
	}

	c.JSON(200, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"favoriteMovies": user.FavoriteMovies,
		"watchlists":     user.Watchlists,
	})
}

// updateProfileRequest 更新资料入参（全部可选）
type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// UpdateProfile 更新用户名/邮箱，可选改密（改密必定重新哈希）
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.Unauthorized(c)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "资料格式不正确")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	var err error
	if req.Password != "" {
		err = h.Accounts.UpdatePassword(user, req.Password)
	} else {
		err = h.Accounts.Save(user)
	}
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 资料变更后返回一枚新令牌
	token, err := middleware.GenerateToken(user.ID, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.OK(c, "资料已更新", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}
