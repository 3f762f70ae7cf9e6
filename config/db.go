package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "rental_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase creates a default property with a handful of vacant rooms on
// an empty database so a fresh install has something to rent.
func SeedDatabase() {
	var propertyCount int64
	DB.Model(&models.Property{}).Count(&propertyCount)
	if propertyCount > 0 {
		return
	}

	property := models.Property{
		Name:    "Main Building",
		Address: "1 Rental Street",
	}
	if err := DB.Create(&property).Error; err != nil {
		log.Printf("warning: failed to seed default property: %v", err)
		return
	}

	rooms := []models.Room{
		{PropertyID: property.ID, Code: "P101", Capacity: 2, Status: models.RoomStatusVacant, MonthlyRent: 3000000, DepositAmount: 3000000},
		{PropertyID: property.ID, Code: "P102", Capacity: 2, Status: models.RoomStatusVacant, MonthlyRent: 3000000, DepositAmount: 3000000},
		{PropertyID: property.ID, Code: "P201", Capacity: 4, Status: models.RoomStatusVacant, MonthlyRent: 4500000, DepositAmount: 4500000},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed default rooms: %v", err)
		return
	}
	log.Println("Default property and rooms seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Tenant{},
		&models.Contract{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
