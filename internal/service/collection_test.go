package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/cinelist/internal/model"
)

// memStore 内存账户存储，FindByID 返回深拷贝来模拟数据库的整行加载
type memStore struct {
	users    map[int]*model.User
	failSave bool
}

func newMemStore(users ...*model.User) *memStore {
	s := &memStore{users: make(map[int]*model.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStore) FindByID(id int) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	data, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	var clone model.User
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, err
	}
	clone.PasswordHash = u.PasswordHash
	return &clone, nil
}

func (s *memStore) Save(user *model.User) error {
	if s.failSave {
		return model.NewStorageError("save user", errors.New("connection reset"))
	}
	s.users[user.ID] = user
	return nil
}

func testUser(id int) *model.User {
	return &model.User{
		ID:             id,
		Username:       "u1",
		Email:          "u1@example.com",
		FavoriteMovies: model.FavoriteList{},
		Watchlists:     model.WatchlistList{},
	}
}

func TestAddFavorite(t *testing.T) {
	store := newMemStore(testUser(1))
	svc := NewCollectionService(store)

	favorites, err := svc.AddFavorite(1, FavoriteInput{TmdbID: 42, Title: "X"})
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.Equal(t, 42, favorites[0].TmdbID)
	require.Equal(t, "X", favorites[0].Title)

	// 再次添加同一部电影必须冲突，且落库数据不变
	_, err = svc.AddFavorite(1, FavoriteInput{TmdbID: 42, Title: "X"})
	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, store.users[1].FavoriteMovies, 1)
}

func TestAddFavorite_MissingFields(t *testing.T) {
	store := newMemStore(testUser(1))
	svc := NewCollectionService(store)

	var validation *model.ValidationError

	_, err := svc.AddFavorite(1, FavoriteInput{Title: "X"})
	require.ErrorAs(t, err, &validation)

	_, err = svc.AddFavorite(1, FavoriteInput{TmdbID: 42})
	require.ErrorAs(t, err, &validation)

	require.Empty(t, store.users[1].FavoriteMovies)
}

func TestRemoveFavorite_NotFound(t *testing.T) {
	user := testUser(1)
	user.FavoriteMovies = model.FavoriteList{{TmdbID: 42, Title: "X"}}
	store := newMemStore(user)
	svc := NewCollectionService(store)

	_, err := svc.RemoveFavorite(1, 99)
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
	// 失败的移除不能动已存储的列表
	require.Len(t, store.users[1].FavoriteMovies, 1)
}

func TestRemoveFavorite(t *testing.T) {
	user := testUser(1)
	user.FavoriteMovies = model.FavoriteList{
		{TmdbID: 42, Title: "X"},
		{TmdbID: 7, Title: "Y"},
	}
	store := newMemStore(user)
	svc := NewCollectionService(store)

	favorites, err := svc.RemoveFavorite(1, 42)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.Equal(t, 7, favorites[0].TmdbID)
}

func TestCreateWatchlist_NameUniqueCaseInsensitive(t *testing.T) {
	store := newMemStore(testUser(1))
	svc := NewCollectionService(store)

	watchlists, err := svc.CreateWatchlist(1, "Weekend")
	require.NoError(t, err)
	require.Len(t, watchlists, 1)
	require.NotEmpty(t, watchlists[0].ID)
	require.Empty(t, watchlists[0].Movies)

	_, err = svc.CreateWatchlist(1, "weekend")
	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, store.users[1].Watchlists, 1)
}

func TestCreateWatchlist_EmptyName(t *testing.T) {
	svc := NewCollectionService(newMemStore(testUser(1)))

	var validation *model.ValidationError
	_, err := svc.CreateWatchlist(1, "   ")
	require.ErrorAs(t, err, &validation)
}

func TestSameMovieAcrossCollections(t *testing.T) {
	store := newMemStore(testUser(1))
	svc := NewCollectionService(store)

	// 同一部电影可以同时出现在收藏和两个不同片单中
	_, err := svc.AddFavorite(1, FavoriteInput{TmdbID: 7, Title: "Y"})
	require.NoError(t, err)

	lists, err := svc.CreateWatchlist(1, "Classics")
	require.NoError(t, err)
	classics := lists[0].ID

	lists, err = svc.CreateWatchlist(1, "Weekend")
	require.NoError(t, err)
	weekend := lists[1].ID

	_, err = svc.AddToWatchlist(1, classics, WatchlistMovieInput{TmdbID: 7, Title: "Y"})
	require.NoError(t, err)
	_, err = svc.AddToWatchlist(1, weekend, WatchlistMovieInput{TmdbID: 7, Title: "Y"})
	require.NoError(t, err)

	// 但在同一个片单内重复添加必须冲突
	_, err = svc.AddToWatchlist(1, classics, WatchlistMovieInput{TmdbID: 7, Title: "Y"})
	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestWatchlistLifecycle(t *testing.T) {
	store := newMemStore(testUser(1))
	svc := NewCollectionService(store)

	lists, err := svc.CreateWatchlist(1, "Classics")
	require.NoError(t, err)
	w1 := lists[0].ID

	watchlist, err := svc.AddToWatchlist(1, w1, WatchlistMovieInput{TmdbID: 7, Title: "Y"})
	require.NoError(t, err)
	require.Len(t, watchlist.Movies, 1)

	// 移除最后一个条目后片单本身仍然存在
	watchlist, err = svc.RemoveFromWatchlist(1, w1, 7)
	require.NoError(t, err)
	require.Empty(t, watchlist.Movies)

	stored := store.users[1]
	require.Len(t, stored.Watchlists, 1)
	require.Equal(t, "Classics", stored.Watchlists[0].Name)
	require.Empty(t, stored.Watchlists[0].Movies)
}

func TestWatchlist_NotFound(t *testing.T) {
	user := testUser(1)
	user.Watchlists = model.WatchlistList{{ID: "w1", Name: "Classics", Movies: []model.WatchlistMovie{}}}
	store := newMemStore(user)
	svc := NewCollectionService(store)

	var notFound *model.NotFoundError

	_, err := svc.AddToWatchlist(1, "missing", WatchlistMovieInput{TmdbID: 7, Title: "Y"})
	require.ErrorAs(t, err, &notFound)

	_, err = svc.RemoveFromWatchlist(1, "missing", 7)
	require.ErrorAs(t, err, &notFound)

	// 片单存在但条目不存在同样是 404
	_, err = svc.RemoveFromWatchlist(1, "w1", 7)
	require.ErrorAs(t, err, &notFound)
}

func TestAccountRowMissing(t *testing.T) {
	svc := NewCollectionService(newMemStore())

	_, err := svc.AddFavorite(99, FavoriteInput{TmdbID: 1, Title: "Z"})
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSaveFailureSurfaces(t *testing.T) {
	store := newMemStore(testUser(1))
	store.failSave = true
	svc := NewCollectionService(store)

	_, err := svc.AddFavorite(1, FavoriteInput{TmdbID: 1, Title: "Z"})
	var storage *model.StorageError
	require.ErrorAs(t, err, &storage)
}
