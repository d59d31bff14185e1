package common

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/vesasusuri/receipts-assistant/constants"
)

// Config holds all application configuration
type Config struct {
	DBPath          string
	QuestionLogPath string
	Currency        constants.Currency
	CategoriesFile  string
	OCR             OCRConfig
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string
	Language    string
	TessdataDir string
	PSM         int
	OEM         int
	DPI         int
	MaxPages    int
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is applied first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:          getEnv("RECEIPTS_DB", "receipts.db"),
		QuestionLogPath: getEnv("CHAT_QUESTIONS_FILE", "chat_questions.jsonl"),
		Currency:        constants.Currency(getEnv("RECEIPTS_CURRENCY", "USD")),
		CategoriesFile:  getEnv("CATEGORIES_FILE", ""),
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_CMD", "tesseract"),
			Language:    getEnv("TESSERACT_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("OCR_PSM", 6),
			OEM:         getEnvAsInt("OCR_OEM", 3),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 0),
		},
	}
}

// Validate rejects bad configuration before any processing begins. The
// currency check is eager: nothing runs with an unsupported currency.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return NewAppError("CONFIG_ERROR", "RECEIPTS_DB is required", ErrInvalidInput)
	}
	if _, err := constants.ParseCurrency(string(c.Currency)); err != nil {
		return NewAppError("CONFIG_ERROR", err.Error(), ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
