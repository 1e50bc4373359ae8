package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"expensetracker/config"
	"expensetracker/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接、迁移表结构并写入初始数据
func Init(cfg *config.Config) error {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.Database.LogLevel)),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	if err := Migrate(DB); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	if err := Seed(DB, cfg.Admin); err != nil {
		return fmt.Errorf("初始化数据失败: %w", err)
	}

	log.Println("数据库初始化成功")
	return nil
}

// openDialector 根据 driver 选择 MySQL 或 SQLite
func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		// 日期统一按 UTC 读写，月份边界与 ledger.Period 保持一致
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=UTC",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
		)
		return mysql.Open(dsn), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("创建数据目录失败: %w", err)
		}
		return sqlite.Open(SQLiteDSN(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// SQLiteDSN 开启外键、WAL 与忙等待，写事务之间排队而不是直接报 database is locked
func SQLiteDSN(path string) string {
	return path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.IncomeCategory{},
		&models.Income{},
		&models.Expense{},
		&models.MonthlyBudget{},
	)
}

// Seed 初始化默认类别（仅当表为空时）与超级管理员账号（仅当不存在时）
func Seed(db *gorm.DB, admin config.AdminConfig) error {
	var catCount int64
	if err := db.Model(&models.Category{}).Count(&catCount).Error; err != nil {
		return fmt.Errorf("统计消费类别失败: %w", err)
	}
	if catCount == 0 {
		cats := models.DefaultCategories()
		if err := db.Create(&cats).Error; err != nil {
			return err
		}
	}

	var incomeCatCount int64
	if err := db.Model(&models.IncomeCategory{}).Count(&incomeCatCount).Error; err != nil {
		return fmt.Errorf("统计收入类别失败: %w", err)
	}
	if incomeCatCount == 0 {
		incomeCats := models.DefaultIncomeCategories()
		if err := db.Create(&incomeCats).Error; err != nil {
			return err
		}
	}

	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	var existing models.User
	err := db.Where("username = ?", admin.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	superAdmin := models.User{
		Username: admin.Username,
		Password: string(hashed),
		Email:    admin.Email,
		Role:     models.RoleSuperAdmin,
	}
	if err := db.Create(&superAdmin).Error; err != nil {
		return err
	}
	log.Printf("已创建超级管理员账号: %s", admin.Username)
	return nil
}
