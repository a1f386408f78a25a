package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/user/cinelist/internal/model"
)

// AccountStore 收藏服务需要的账户存取能力
type AccountStore interface {
	FindByID(id int) (*model.User, error)
	Save(user *model.User) error
}

// CollectionService 收藏与片单管理
// 所有变更都遵循同一套路：整行加载账户 → 校验单条不变量 → 内存中修改 → 整行回写。
// 校验不通过时不会触碰存储，失败的调用对落库数据零影响。
type CollectionService struct {
	accounts AccountStore
}

func NewCollectionService(accounts AccountStore) *CollectionService {
	return &CollectionService{accounts: accounts}
}

// FavoriteInput 添加收藏的入参
type FavoriteInput struct {
	TmdbID      int     `json:"tmdbId"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"posterPath"`
	ReleaseDate *string `json:"releaseDate"`
}

// WatchlistMovieInput 向片单添加条目的入参
type WatchlistMovieInput struct {
	TmdbID     int     `json:"tmdbId"`
	Title      string  `json:"title"`
	PosterPath *string `json:"posterPath"`
}

// loadAccount 加载账户；令牌签发时账户必然存在，行消失视为硬性不一致
func (s *CollectionService) loadAccount(userID int) (*model.User, error) {
	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NewNotFoundError("用户不存在")
	}
	return user, nil
}

// AddFavorite 添加收藏，同一账户内 TMDB ID 不允许重复
func (s *CollectionService) AddFavorite(userID int, input FavoriteInput) (model.FavoriteList, error) {
	if input.TmdbID == 0 || input.Title == "" {
		return nil, model.NewValidationError("电影 ID 和标题不能为空")
	}

	user, err := s.loadAccount(userID)
	if err != nil {
		return nil, err
	}

	if user.HasFavorite(input.TmdbID) {
		return nil, model.NewConflictError("电影已在收藏中")
	}

	user.FavoriteMovies = append(user.FavoriteMovies, model.FavoriteMovie{
		TmdbID:      input.TmdbID,
		Title:       input.Title,
		PosterPath:  input.PosterPath,
		ReleaseDate: input.ReleaseDate,
	})

	if err := s.accounts.Save(user); err != nil {
		return nil, err
	}
	return user.FavoriteMovies, nil
}

// RemoveFavorite 移除收藏，不存在的条目返回 NotFound 而非静默成功
func (s *CollectionService) RemoveFavorite(userID, tmdbID int) (model.FavoriteList, error) {
	user, err := s.loadAccount(userID)
	if err != nil {
		return nil, err
	}

	if !user.RemoveFavorite(tmdbID) {
		return nil, model.NewNotFoundError("收藏中没有这部电影")
	}

	if err := s.accounts.Save(user); err != nil {
		return nil, err
	}
	return user.FavoriteMovies, nil
}

// CreateWatchlist 创建片单，名称在账户内大小写不敏感唯一
func (s *CollectionService) CreateWatchlist(userID int, name string) (model.WatchlistList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("片单名称不能为空")
	}

	user, err := s.loadAccount(userID)
	if err != nil {
		return nil, err
	}

	if user.HasWatchlistNamed(name) {
		return nil, model.NewConflictError("同名片单已存在")
	}

	user.Watchlists = append(user.Watchlists, model.Watchlist{
		ID:     uuid.NewString(),
		Name:   name,
		Movies: []model.WatchlistMovie{},
	})

	if err := s.accounts.Save(user); err != nil {
		return nil, err
	}
	return user.Watchlists, nil
}

// AddToWatchlist 向片单添加条目
// 唯一性只约束在这一个片单内：同一部电影可以同时出现在收藏和任意多个片单里
func (s *CollectionService) AddToWatchlist(userID int, watchlistID string, input WatchlistMovieInput) (*model.Watchlist, error) {
	if input.TmdbID == 0 || input.Title == "" {
		return nil, model.NewValidationError("电影 ID 和标题不能为空")
	}

	user, err := s.loadAccount(userID)
	if err != nil {
		return nil, err
	}

	watchlist := user.FindWatchlist(watchlistID)
	if watchlist == nil {
		return nil, model.NewNotFoundError("片单不存在")
	}

	if watchlist.HasMovie(input.TmdbID) {
		return nil, model.NewConflictError("电影已在该片单中")
	}

	watchlist.Movies = append(watchlist.Movies, model.WatchlistMovie{
		TmdbID:     input.TmdbID,
		Title:      input.Title,
		PosterPath: input.PosterPath,
	})

	if err := s.accounts.Save(user); err != nil {
		return nil, err
	}
	return watchlist, nil
}

// RemoveFromWatchlist 从片单移除条目
// 移除最后一个条目后片单本身保留，不会被连带删除
func (s *CollectionService) RemoveFromWatchlist(userID int, watchlistID string, tmdbID int) (*model.Watchlist, error) {
	user, err := s.loadAccount(userID)
	if err != nil {
		return nil, err
	}

	watchlist := user.FindWatchlist(watchlistID)
	if watchlist == nil {
		return nil, model.NewNotFoundError("片单不存在")
	}

	if !watchlist.RemoveMovie(tmdbID) {
		return nil, model.NewNotFoundError("该片单中没有这部电影")
	}

	if err := s.accounts.Save(user); err != nil {
		return nil, err
	}
	return watchlist, nil
}
