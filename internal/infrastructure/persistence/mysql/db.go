package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

// NewDB opens the MySQL connection, configures the pool and runs
// AutoMigrate. Production deployments should use versioned migrations
// instead of relying on AutoMigrate.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("database connected")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&ReviewModel{},
		&FavoriteModel{},
	)
}

// UserModel is the GORM persistence model for users. Domain entities stay
// free of GORM tags; repositories convert between the two.
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:50;not null"`
	Email     string    `gorm:"uniqueIndex;size:100;not null"`
	Password  string    `gorm:"size:255;not null"` // bcrypt hash
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// BookModel uses an explicit is_active flag rather than gorm.DeletedAt.
// Soft-deleted books must remain joinable from reviews and favorites, and
// DeletedAt's implicit query scoping would hide them everywhere.
type BookModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"index:idx_search;size:200;not null"`
	Author      string `gorm:"index:idx_search;size:200;not null"`
	Description string `gorm:"type:text"`
	CreatedBy   uint   `gorm:"index;not null"`
	IsActive    bool   `gorm:"index;not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// ReviewModel has no unique constraint on (user_id, book_id): a user may
// review the same book multiple times.
type ReviewModel struct {
	ID         uint `gorm:"primaryKey"`
	BookID     uint `gorm:"index;not null"`
	UserID     uint `gorm:"index;not null"`
	Rating     int  `gorm:"type:tinyint;not null"`
	ReviewText string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// FavoriteModel enforces pair uniqueness at the database level with a
// composite unique index. Concurrent duplicate inserts surface as a 1062
// duplicate key error, which the repository maps to a business error.
type FavoriteModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_user_book;not null"`
	BookID    uint `gorm:"uniqueIndex:idx_user_book;not null"`
	CreatedAt time.Time
}

func (FavoriteModel) TableName() string {
	return "favorites"
}
