package app

import (
	"strings"

	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
	"github.com/contractdesk/contractdesk-backend/internal/utils"
)

type Config struct {
	Port           string
	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	origins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000", log)
	return Config{
		Port:           port,
		AllowedOrigins: strings.Split(origins, ","),
	}
}
