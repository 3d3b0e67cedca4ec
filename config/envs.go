package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP         string // Host IP for the server
	RESTPort       int    // Port for the REST API
	GinMode        string // Mode for the Gin framework (e.g., release, debug, test)
	RedisAddr      string // Address of the redis server backing the image queue
	RedisPassword  string // Password for the redis server
	ImageQueueKey  string // Redis list holding queued images
	ImageBatchSize int    // Images popped from redis per round trip
	DBURI          string // Connection string for the layout history database
	DBName         string // Name of the database
	DefaultMode    string // Layout mode of new sessions
	DefaultSize    int    // Layout size of new sessions, 0 picks the mode default
	TickRate       int    // Simulation ticks per second
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file. Every key has a default so packages
// that import config for its constants can be loaded without an environment.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:         getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:       getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:        getEnvWithDefault("GIN_MODE", "release"),
		RedisAddr:      getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnvWithDefault("REDIS_PASSWORD", ""),
		ImageQueueKey:  getEnvWithDefault("IMAGE_QUEUE_KEY", "walker:images"),
		ImageBatchSize: getEnvAsIntWithDefault("IMAGE_BATCH_SIZE", 16),
		DBURI:          getEnvWithDefault("DB_URI", "mongodb://localhost:27017"),
		DBName:         getEnvWithDefault("DB_NAME", "walker"),
		DefaultMode:    getEnvWithDefault("DEFAULT_MODE", "bsp"),
		DefaultSize:    getEnvAsIntWithDefault("DEFAULT_SIZE", 0),
		TickRate:       getEnvAsIntWithDefault("TICK_RATE", 60),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable. Unset keys return the
// default; values that do not parse are logged and also fall back to the default.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [ERROR] Environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}
