package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Port           string
	DBDriver       string
	DBUrl          string
	RedisUrl       string
	AllowedOrigins []string
	RoomCount      int
	LogFile        string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("ROOM_COUNT", 9)

	cfg := Config{
		Port:           v.GetString("PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBUrl:          v.GetString("DB_URL"),
		RedisUrl:       v.GetString("REDIS_URL"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RoomCount:      v.GetInt("ROOM_COUNT"),
		LogFile:        v.GetString("LOG_FILE"),
	}

	if cfg.DBUrl == "" {
		cfg.DBUrl = v.GetString("PG_URL")
	}
	if cfg.DBUrl == "" && cfg.DBDriver == DriverSQLite {
		cfg.DBUrl = "hoteldesk.db"
	}
	if cfg.RoomCount <= 0 {
		cfg.RoomCount = 9
	}

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
