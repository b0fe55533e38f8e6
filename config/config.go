package config

import (
	"os"
	"strconv"
	"strings"
)

// Config 应用配置
type Config struct {
	Port           int
	BotToken       string
	AdminChatID    string
	AllowedOrigins []string
	DataDir        string
	Debug          bool
}

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	port, _ := strconv.Atoi(getEnv("CONSULTATION_PORT", "3001"))
	return &Config{
		Port:           port,
		BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminChatID:    getEnv("TELEGRAM_ADMIN_CHAT_ID", ""),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		DataDir:        getEnv("DATA_DIR", "data"),
		Debug:          getEnv("GIN_MODE", "debug") == "debug",
	}
}

// splitOrigins 解析逗号分隔的跨域白名单
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
