package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// 数据库配置 ("memory" 表示使用内存存储，用于演示/本地开发)
	DatabaseURL string

	// 服务器配置
	Port           string
	AllowedOrigins []string

	// 授权令牌（静态令牌网关，见 services/auth.go）
	AdminToken   string
	RefereeToken string

	// AMQP 广播桥配置（留空则禁用）
	AMQPURL        string
	AMQPExchange   string
	AMQPMaxRetries int // 重连最大次数，0 表示无限重试

	// 其他配置
	Environment string
}

func Load() *Config {
	// 本地开发时从 .env 读取环境变量，文件不存在则忽略
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/cup?sslmode=disable"),

		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getList("ALLOWED_ORIGINS", "*"),

		AdminToken:   getEnv("ADMIN_TOKEN", ""),
		RefereeToken: getEnv("REFEREE_TOKEN", ""),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "cup.live"),
		AMQPMaxRetries: getEnvInt("AMQP_MAX_RETRIES", 0),

		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
