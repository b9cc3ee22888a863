package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
)

type Config struct {
	Port        string
	LogLevel    string
	DatabaseURL string
	JWTSecret   []byte

	// Pricing policy for checkout. FreeShippingOver <= 0 disables free
	// shipping and the flat fee always applies.
	TaxRate          float64
	ShippingFlatFee  float64
	FreeShippingOver float64

	SeedPath string

	// Optional collaborators, disabled when empty.
	KafkaAddress string
	ESURL        string
	ESUser       string
	ESPassword   string
	OTLPEndpoint string
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func envDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envFloat(name string, def float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("env %s: %v", name, err)
	}
	return f
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found, using system environment")
	}

	return &Config{
		Port:             envDefault("SERVER_PORT", "8080"),
		LogLevel:         envDefault("LOG_LEVEL", "info"),
		DatabaseURL:      must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		JWTSecret:        []byte(must(os.Getenv("JWT_HS256_SECRET"), "JWT_HS256_SECRET")),
		TaxRate:          envFloat("TAX_RATE", 0.21),
		ShippingFlatFee:  envFloat("SHIPPING_FLAT_FEE", 50),
		FreeShippingOver: envFloat("FREE_SHIPPING_OVER", 50),
		SeedPath:         envDefault("SEED_PATH", "data/productos.json"),
		KafkaAddress:     os.Getenv("KAFKA_ADDRESS"),
		ESURL:            os.Getenv("ES_URL"),
		ESUser:           os.Getenv("ES_USER"),
		ESPassword:       os.Getenv("ES_PASSWORD"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.User{},
		&models.Cart{},
		&models.CartItem{},
		&models.Purchase{},
		&models.PurchaseItem{},
	); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	return db, nil
}
