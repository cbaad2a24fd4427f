package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	GeminiKey          string
	GeminiModel        string
	MaxConcurrent      int
	RequestTimeout     time.Duration
	AnalysisChunkWords int
	AnalysisOverlap    int
	MaxUploadBytes     int64
}

func Load() *Config {
	log.Println("Loading configuration from environment")

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	port := getEnv("PORT", "8080")
	log.Printf("PORT: %s", port)

	apiKey := getEnv("GEMINI_API_KEY", "")
	if apiKey == "" {
		log.Printf("WARNING: GEMINI_API_KEY not set")
	} else {
		log.Printf("GEMINI_API_KEY: [REDACTED]")
	}

	model := getEnv("GEMINI_MODEL", "gemini-flash-latest")
	log.Printf("GEMINI_MODEL: %s", model)

	maxConcurrent := getEnvAsInt("MAX_CONCURRENT", 4)
	log.Printf("MAX_CONCURRENT: %d", maxConcurrent)

	requestTimeout := getEnvAsDuration("REQUEST_TIMEOUT", 90*time.Second)
	log.Printf("REQUEST_TIMEOUT: %v", requestTimeout)

	chunkWords := getEnvAsInt("ANALYSIS_CHUNK_WORDS", 3000)
	log.Printf("ANALYSIS_CHUNK_WORDS: %d", chunkWords)

	overlap := getEnvAsInt("ANALYSIS_OVERLAP", 150)
	log.Printf("ANALYSIS_OVERLAP: %d", overlap)

	maxUpload := int64(getEnvAsInt("MAX_UPLOAD_MB", 64)) << 20
	log.Printf("MAX_UPLOAD_MB: %d", maxUpload>>20)

	return &Config{
		Port:               port,
		GeminiKey:          apiKey,
		GeminiModel:        model,
		MaxConcurrent:      maxConcurrent,
		RequestTimeout:     requestTimeout,
		AnalysisChunkWords: chunkWords,
		AnalysisOverlap:    overlap,
		MaxUploadBytes:     maxUpload,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Failed to parse %s as integer: %v, using default: %d", key, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Failed to parse %s as duration: %v, using default: %v", key, err, defaultValue)
		return defaultValue
	}
	return value
}
