package resource

import (
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	properties = viper.New()
	mutex      sync.RWMutex
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// Init loads application properties from a YAML file, resolving ${ENV} and ${ENV:default}
// placeholders against the process environment. Calling it again replaces the loaded properties.
func Init(filepath string) error {
	source := viper.New()
	source.SetConfigFile(filepath)
	source.SetConfigType("yml")

	if err := source.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read properties: %w", err)
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", source.AllSettings(), resolved)

	loaded := viper.New()
	for key, value := range resolved {
		loaded.Set(key, value)
	}

	mutex.Lock()
	properties = loaded
	mutex.Unlock()
	return nil
}

// PathFromEnv returns PROPERTIES_FILE_PATH when set, otherwise the given default.
func PathFromEnv(defaultPath string) string {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok && value != "" {
		return value
	}
	return defaultPath
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariables(v)
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariables replaces every ${NAME} or ${NAME:default} in value. An unset variable with
// no default resolves to an empty string.
func resolveEnvVariables(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(groups[1]); exists {
			return envValue
		}
		return groups[2]
	})
}

func current() *viper.Viper {
	mutex.RLock()
	defer mutex.RUnlock()
	return properties
}

func IsSet(key string) bool {
	return current().IsSet(key)
}

func GetString(key string) string {
	return current().GetString(key)
}

// GetStringOrDefault returns the property, or defaultValue when it is missing or empty.
func GetStringOrDefault(key, defaultValue string) string {
	if value := GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return current().GetBool(key)
}

func GetDuration(key string) time.Duration {
	return current().GetDuration(key)
}

// GetDurationOrDefault returns the property, or defaultValue when it is missing or not positive.
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := GetDuration(key); value > 0 {
		return value
	}
	return defaultValue
}

func GetInt(key string) int {
	return current().GetInt(key)
}

// GetIntOrDefault returns the property, or defaultValue when it is missing or zero.
func GetIntOrDefault(key string, defaultValue int) int {
	if value := GetInt(key); value != 0 {
		return value
	}
	return defaultValue
}
