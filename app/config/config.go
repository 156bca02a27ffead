package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB        *sql.DB
	JWTSecret string
	Port      string
}

var AppConfig *Config

// Load reads .env (if present) and environment variables into the global
// configuration, then opens the database pool.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := envOr("DB_NAME", "educore")
		sslmode := envOr("DB_SSLMODE", "disable")

		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
			host, port, user, dbname, sslmode)
		if password != "" {
			psqlInfo += " password=" + password
		}
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	AppConfig = &Config{
		DB:        db,
		JWTSecret: secret,
		Port:      envOr("PORT", "8080"),
	}
	log.Println("Database connected successfully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
