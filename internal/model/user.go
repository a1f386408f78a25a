package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// User 用户模型（账户是唯一的持久化单元，收藏和片单内嵌在同一行）
type User struct {
	ID             int           `json:"id" db:"id"`
	Username       string        `json:"username" db:"username" gorm:"unique"`
	Email          string        `json:"email" db:"email" gorm:"unique"`
	PasswordHash   string        `json:"-" db:"password_hash"`
	FavoriteMovies FavoriteList  `json:"favorite_movies" db:"favorite_movies" gorm:"type:jsonb;default:'[]'"`
	Watchlists     WatchlistList `json:"watchlists" db:"watchlists" gorm:"type:jsonb;default:'[]'"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

// FavoriteMovie 收藏条目（添加时从 TMDB 快照的字段，之后不再刷新）
type FavoriteMovie struct {
	TmdbID      int     `json:"tmdbId"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"posterPath,omitempty"`
	ReleaseDate *string `json:"releaseDate,omitempty"`
}

// Watchlist 片单（账户内 ID 唯一，名称大小写不敏感唯一）
type Watchlist struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Movies []WatchlistMovie `json:"movies"`
}

// WatchlistMovie 片单条目
type WatchlistMovie struct {
	TmdbID     int     `json:"tmdbId"`
	Title      string  `json:"title"`
	PosterPath *string `json:"posterPath,omitempty"`
}

// FavoriteList 以 JSONB 形式整体存储在用户行中
type FavoriteList []FavoriteMovie

// WatchlistList 以 JSONB 形式整体存储在用户行中
type WatchlistList []Watchlist

// Value 实现 driver.Valuer，序列化为 JSONB
func (l FavoriteList) Value() (driver.Value, error) {
	if l == nil {
		l = FavoriteList{}
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner
func (l *FavoriteList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Value 实现 driver.Valuer，序列化为 JSONB
func (l WatchlistList) Value() (driver.Value, error) {
	if l == nil {
		l = WatchlistList{}
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner
func (l *WatchlistList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, target interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("无法将 %T 扫描为 JSON 列", value)
	}
}

// HasFavorite 检查 TMDB ID 是否已在收藏中
func (u *User) HasFavorite(tmdbID int) bool {
	for _, m := range u.FavoriteMovies {
		if m.TmdbID == tmdbID {
			return true
		}
	}
	return false
}

// RemoveFavorite 移除收藏条目，返回是否实际移除
func (u *User) RemoveFavorite(tmdbID int) bool {
	kept := u.FavoriteMovies[:0]
	removed := false
	for _, m := range u.FavoriteMovies {
		if m.TmdbID == tmdbID {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	u.FavoriteMovies = kept
	return removed
}

// FindWatchlist 按 ID 查找片单（指向底层元素，可原地修改）
func (u *User) FindWatchlist(id string) *Watchlist {
	for i := range u.Watchlists {
		if u.Watchlists[i].ID == id {
			return &u.Watchlists[i]
		}
	}
	return nil
}

// HasWatchlistNamed 检查是否已存在同名片单（大小写不敏感）
func (u *User) HasWatchlistNamed(name string) bool {
	for _, w := range u.Watchlists {
		if strings.EqualFold(w.Name, name) {
			return true
		}
	}
	return false
}

// HasMovie 检查 TMDB ID 是否已在本片单中
func (w *Watchlist) HasMovie(tmdbID int) bool {
	for _, m := range w.Movies {
		if m.TmdbID == tmdbID {
			return true
		}
	}
	return false
}

// RemoveMovie 从片单移除条目，返回是否实际移除
func (w *Watchlist) RemoveMovie(tmdbID int) bool {
	kept := w.Movies[:0]
	removed := false
	for _, m := range w.Movies {
		if m.TmdbID == tmdbID {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	w.Movies = kept
	return removed
}
