package repository

import (
	"fmt"
	"time"

	"github.com/user/cinelist/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // 把驱动的唯一键冲突翻译成 gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	// 自动迁移用户表（收藏和片单是 JSONB 列，不需要独立表）
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return nil, fmt.Errorf("自动迁移失败: %w", err)
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB   *gorm.DB
	User *UserRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:   db,
		User: NewUserRepository(db),
	}
}
