package service

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/user/cinelist/internal/config"
	"github.com/user/cinelist/internal/utils"
	"golang.org/x/sync/singleflight"
)

// TMDBService TMDB 元数据代理
// 只做转发：搜索/详情/推荐原样返回上游 JSON，本地不落库。
// 收藏条目保存的是添加时刻的快照，这里永远不负责刷新它们。
type TMDBService struct {
	config      *config.Config
	client      *utils.HTTPClient
	group       singleflight.Group
	searchCache *utils.TTLCache[json.RawMessage]
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		config: cfg,
		client: utils.NewHTTPClient(15 * time.Second),
		// 搜索结果最多缓存 1000 条查询，10 分钟过期
		searchCache: utils.NewTTLCache[json.RawMessage](1000, 10*time.Minute),
	}
}

// Search 搜索电影；query 为空时退回热门榜单
func (s *TMDBService) Search(query string, page int) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}

	var endpoint string
	if query != "" {
		endpoint = fmt.Sprintf("%s/search/movie?api_key=%s&page=%d&query=%s",
			s.config.TMDBBaseURL, s.config.TMDBAPIKey, page, url.QueryEscape(query))
	} else {
		endpoint = fmt.Sprintf("%s/movie/popular?api_key=%s&page=%d",
			s.config.TMDBBaseURL, s.config.TMDBAPIKey, page)
	}

	cacheKey := fmt.Sprintf("search:%s:%d", query, page)
	if cached, ok := s.searchCache.Get(cacheKey); ok {
		return cached, nil
	}

	raw, err := s.fetch(cacheKey, endpoint)
	if err != nil {
		return nil, err
	}
	s.searchCache.Set(cacheKey, raw)
	return raw, nil
}

// Details 获取电影详情（附带演职员、预告片和影评）
func (s *TMDBService) Details(movieID string) (json.RawMessage, error) {
	cacheKey := "movie:" + movieID
	if cached, ok := utils.CacheGet(cacheKey); ok {
		return cached.(json.RawMessage), nil
	}

	endpoint := fmt.Sprintf("%s/movie/%s?api_key=%s&append_to_response=credits,videos,reviews",
		s.config.TMDBBaseURL, url.PathEscape(movieID), s.config.TMDBAPIKey)

	raw, err := s.fetch(cacheKey, endpoint)
	if err != nil {
		return nil, err
	}
	utils.CacheSet(cacheKey, raw, 5*time.Minute)
	return raw, nil
}

// Recommendations 获取相关推荐；不带电影 ID 时退回本周趋势榜
func (s *TMDBService) Recommendations(movieID string) (json.RawMessage, error) {
	var endpoint, cacheKey string
	if movieID != "" {
		endpoint = fmt.Sprintf("%s/movie/%s/recommendations?api_key=%s",
			s.config.TMDBBaseURL, url.PathEscape(movieID), s.config.TMDBAPIKey)
		cacheKey = "rec:" + movieID
	} else {
		endpoint = fmt.Sprintf("%s/trending/movie/week?api_key=%s",
			s.config.TMDBBaseURL, s.config.TMDBAPIKey)
		cacheKey = "rec:trending"
	}

	if cached, ok := utils.CacheGet(cacheKey); ok {
		return cached.(json.RawMessage), nil
	}

	raw, err := s.fetch(cacheKey, endpoint)
	if err != nil {
		return nil, err
	}
	utils.CacheSet(cacheKey, raw, 10*time.Minute)
	return raw, nil
}

// fetch 使用 singleflight 合并并发的相同上游请求
func (s *TMDBService) fetch(key, endpoint string) (json.RawMessage, error) {
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.client.GetRaw(endpoint)
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(val.([]byte)), nil
}
