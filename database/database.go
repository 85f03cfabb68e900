package database

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"pocketledger/config"
	"pocketledger/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 按配置建立数据库连接并完成迁移与默认数据初始化
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database, cfg.Ledger.Location)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.Database.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("数据库初始化成功")
	return db, nil
}

// dialectorFor 驱动时区与账本时区一致，交易日期写入 DATE 列时不会偏移一天
func dialectorFor(c config.DatabaseConfig, loc *time.Location) (gorm.Dialector, error) {
	if loc == nil {
		loc = time.Local
	}
	switch c.Driver {
	case "", "mysql":
		// 构建 MySQL DSN 连接字符串
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=%s",
			c.Username, c.Password, c.Host, c.Port, c.DBName, c.Charset, url.QueryEscape(loc.String()))
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode)
		if loc != time.Local {
			dsn += " TimeZone=" + loc.String()
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", c.Driver)
	}
}

func logLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
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

// Migrate 自动迁移数据库表，并在表为空时写入默认类别与支付方式
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Transaction{},
		&models.WalletBalance{},
		&models.Category{},
		&models.Subcategory{},
		&models.PaymentMethod{},
	); err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}
	return Seed(db)
}

// Seed 初始化默认类别、二级类别与支付方式（仅当表为空时）
func Seed(db *gorm.DB) error {
	var catCount int64
	if err := db.Model(&models.Category{}).Count(&catCount).Error; err != nil {
		return err
	}
	if catCount == 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			for i, dc := range models.DefaultCategories() {
				cat := models.Category{
					Name:  dc.Name,
					Type:  dc.Type,
					Icon:  dc.Icon,
					Sort:  (i + 1) * 10,
					Color: dc.Color,
				}
				if err := tx.Create(&cat).Error; err != nil {
					return err
				}
				for _, name := range dc.Subcategories {
					if err := tx.Create(&models.Subcategory{CategoryID: cat.ID, Name: name}).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("初始化默认类别失败: %w", err)
		}
	}

	var methodCount int64
	if err := db.Model(&models.PaymentMethod{}).Count(&methodCount).Error; err != nil {
		return err
	}
	if methodCount == 0 {
		var methods []models.PaymentMethod
		for _, name := range models.DefaultPaymentMethods() {
			methods = append(methods, models.PaymentMethod{Name: name})
		}
		if err := db.Create(&methods).Error; err != nil {
			return fmt.Errorf("初始化默认支付方式失败: %w", err)
		}
	}
	return nil
}
