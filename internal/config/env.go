package config

import (
	"os"
	"strconv"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL       = "JOBDESK_API_URL"
	EnvPublicAPIURL = "NEXT_PUBLIC_API_URL"
	EnvIDToken      = "JOBDESK_ID_TOKEN"
	EnvTimeout      = "JOBDESK_TIMEOUT_SECONDS"
	EnvATSTimeout   = "JOBDESK_ATS_TIMEOUT_SECONDS"
	EnvOutput       = "JOBDESK_OUTPUT"
	EnvDownloadDir  = "JOBDESK_DOWNLOAD_DIR"
)

// FromEnv builds a Config from environment variables. Unset variables leave
// fields empty so the result can be merged with other sources.
// JOBDESK_API_URL wins over NEXT_PUBLIC_API_URL when both are set.
func FromEnv() Config {
	apiURL := os.Getenv(EnvAPIURL)
	if apiURL == "" {
		apiURL = os.Getenv(EnvPublicAPIURL)
	}
	return Config{
		APIURL:            apiURL,
		IDToken:           os.Getenv(EnvIDToken),
		TimeoutSeconds:    getEnvInt(EnvTimeout, 0),
		ATSTimeoutSeconds: getEnvInt(EnvATSTimeout, 0),
		Output:            os.Getenv(EnvOutput),
		DownloadDir:       os.Getenv(EnvDownloadDir),
	}
}

// Resolve layers flags over the config file, the environment and the built-in defaults.
// file may be nil when no config file was given.
func Resolve(flags Config, file *Config) Config {
	merged := flags.MergeWithDefaults(FromEnv())
	if file != nil {
		merged = merged.MergeWithDefaults(*file)
	}
	return merged.MergeWithDefaults(Defaults())
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
