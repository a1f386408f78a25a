package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/user/cinelist/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户（邮箱统一小写，用户名去除首尾空白）
func (r *UserRepository) Create(email, username, password string) (*model.User, error) {
	// 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Username:       strings.TrimSpace(username),
		PasswordHash:   string(hash),
		FavoriteMovies: model.FavoriteList{},
		Watchlists:     model.WatchlistList{},
		CreatedAt:      time.Now(),
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, model.NewConflictError("用户已存在")
		}
		return nil, model.NewStorageError("create user", err)
	}

	return user, nil
}

// FindByEmail 根据邮箱查找用户
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError("find user by email", err)
	}

	return &user, nil
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError("find user by id", err)
	}

	return &user, nil
}

// Save 整行回写账户（收藏/片单的所有变更都通过这里落库）
// 同一账户的并发写入没有版本检查，后写覆盖先写
func (r *UserRepository) Save(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return model.NewStorageError("save user", err)
	}
	return nil
}

// CheckPassword 验证密码
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// UpdatePassword 更新密码（每次修改都重新哈希）
func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return r.Save(user)
}

// Delete 删除用户（当前未挂路由，保留以便账户注销时整行清理）
func (r *UserRepository) Delete(userID int) error {
	if err := r.db.Delete(&model.User{}, userID).Error; err != nil {
		return model.NewStorageError("delete user", err)
	}
	return nil
}
