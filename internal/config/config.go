package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  int
	Password              string
	ModelPath             string
	ConfigPath            string
	ImageDirectory        string
	DatabasePath          string
	LogDirectory          string
	ProfilesPath          string  // Optional YAML file overriding policy profiles
	DefaultProfile        string  // Profile used when a request names none
	ConfidenceThreshold   float64 // Detections at or below this confidence are dropped
	ImageBufferLimit      int
	BufferFlushInterval   int
	ProcessingWorkers     int
	ProcessingInterval    int   // Analyze every Nth camera frame (1=every frame)
	MotionThreshold       int   // Changed-pixel count above which a frame counts as motion
	UseMockDetector       bool  // Run with the mock detector instead of the DNN
	MockDetectorSeed      int64 // Seed for the mock detector's confidence jitter
	MaxImageDirectorySize int64 // Reported cap for the images directory, in GB
}

func Load() *Config {
	// A missing .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Port:                  getEnvAsInt("PORT", 8080),
		Password:              getEnv("PASSWORD", "changeme"),
		ModelPath:             getEnv("MODEL_PATH", filepath.Join(".", "models", "ppe_ssd_mobilenet.pb")),
		ConfigPath:            getEnv("CONFIG_PATH", filepath.Join(".", "models", "ppe_ssd_mobilenet.pbtxt")),
		ImageDirectory:        getEnv("IMAGE_DIR", filepath.Join(".", "images")),
		DatabasePath:          getEnv("DB_PATH", filepath.Join(".", "data", "analyses.db")),
		LogDirectory:          getEnv("LOG_DIR", filepath.Join(".", "logs")),
		ProfilesPath:          getEnv("PROFILES_PATH", filepath.Join(".", "profiles.yaml")),
		DefaultProfile:        getEnv("DEFAULT_PROFILE", "general"),
		ConfidenceThreshold:   getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.5),
		ImageBufferLimit:      getEnvAsInt("BUFFER_LIMIT", 7),
		BufferFlushInterval:   getEnvAsInt("FLUSH_INTERVAL", 30),
		ProcessingWorkers:     getEnvAsInt("PROCESSING_WORKERS", 3),
		ProcessingInterval:    getEnvAsInt("PROCESSING_INTERVAL", 3),
		MotionThreshold:       getEnvAsInt("MOTION_THRESHOLD", 10000),
		UseMockDetector:       getEnvAsBool("USE_MOCK_DETECTOR", false),
		MockDetectorSeed:      getEnvAsInt64("MOCK_DETECTOR_SEED", 1),
		MaxImageDirectorySize: getEnvAsInt64("MAX_IMAGE_DIRECTORY_SIZE", 4),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
