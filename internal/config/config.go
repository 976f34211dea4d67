package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MappingFilePath  string
	StockFilePath    string
	TemplateFilePath string
	OutputDir        string
	DBPath           string

	ImageMaxDim    int
	ImageQuality   int
	ImageTimeoutMs int

	// StockLayout selects how availability variant names are joined:
	// flat | grouped_lines | grouped_inline.
	StockLayout string

	LogLevel string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		MappingFilePath:  getEnv("MAPPING_FILE_PATH", filepath.Join(cwd, "mapping-file.xlsx")),
		StockFilePath:    getEnv("STOCK_FILE_PATH", filepath.Join(cwd, "stock.xlsx")),
		TemplateFilePath: getEnv("TEMPLATE_FILE_PATH", filepath.Join(cwd, "template-generator.json")),
		OutputDir:        getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		DBPath:           getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		ImageMaxDim:    getEnvInt("IMAGE_MAX_DIM", 1200),
		ImageQuality:   getEnvInt("IMAGE_QUALITY", 70),
		ImageTimeoutMs: getEnvInt("IMAGE_TIMEOUT_MS", 30000),

		StockLayout: getEnv("STOCK_LAYOUT", "flat"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
