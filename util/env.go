package util

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable key, or defaultValue
// when it is unset or empty.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt is GetEnv for integers. Values that do not parse fall back to
// defaultValue.
func GetEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
