package config

import (
	"database/sql"
	"log"
	"os"
	"strings"

	"github.com/spf13/cast"
)

type Config struct {
	Port         int
	DatabaseURL  string
	RedisAddr    string
	JWTSecret    string
	TokenTTLMins int

	TMDBAPIKey   string
	TMDBLanguage string

	CMCCAuthorization string
	CMCCCookie        string
	CMCCClientInfo    string

	MaxCleanDepth int
	CleanSchedule string // cron expression, empty disables scheduled cleans
	CleanFolders  string // comma-separated id:name pairs
}

func Load() *Config {
	return &Config{
		Port:         envInt("PORT", 8080),
		DatabaseURL:  env("DATABASE_URL", "postgres://drivetidy:drivetidy@db:5432/drivetidy?sslmode=disable"),
		RedisAddr:    env("REDIS_ADDR", "redis:6379"),
		JWTSecret:    env("JWT_SECRET", "change-me-in-production"),
		TokenTTLMins: envInt("TOKEN_TTL_MINUTES", 60*24),

		TMDBAPIKey:   env("TMDB_API_KEY", ""),
		TMDBLanguage: env("TMDB_LANGUAGE", "zh-CN"),

		CMCCAuthorization: env("CMCC_AUTHORIZATION", ""),
		CMCCCookie:        env("CMCC_COOKIE", ""),
		CMCCClientInfo:    env("CMCC_CLIENT_INFO", ""),

		MaxCleanDepth: envInt("MAX_CLEAN_DEPTH", 8),
		CleanSchedule: env("CLEAN_SCHEDULE", ""),
		CleanFolders:  env("CLEAN_FOLDERS", ""),
	}
}

// MergeFromDB overlays settings stored through the UI on top of the
// environment defaults. Missing table or rows are not an error.
func (c *Config) MergeFromDB(db *sql.DB) {
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		log.Printf("config: skipping DB merge: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		if value == "" {
			continue
		}
		switch key {
		case "tmdb_api_key":
			c.TMDBAPIKey = value
		case "tmdb_language":
			c.TMDBLanguage = value
		case "cmcc_authorization":
			c.CMCCAuthorization = value
		case "cmcc_cookie":
			c.CMCCCookie = value
		case "cmcc_client_info":
			c.CMCCClientInfo = value
		case "max_clean_depth":
			if v := cast.ToInt(value); v > 0 {
				c.MaxCleanDepth = v
			}
		case "clean_schedule":
			c.CleanSchedule = value
		case "clean_folders":
			c.CleanFolders = value
		}
	}
}

type CleanFolder struct {
	ID   string
	Name string
}

// CleanFolderList parses CleanFolders ("id:name,id:name"). A bare id
// without a name uses the id as its display name.
func (c *Config) CleanFolderList() []CleanFolder {
	var out []CleanFolder
	for _, part := range strings.Split(c.CleanFolders, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, name, found := strings.Cut(part, ":")
		if !found || name == "" {
			name = id
		}
		out = append(out, CleanFolder{ID: id, Name: name})
	}
	return out
}

// HasCMCC reports whether drive credentials are present; organize/clean
// requests are rejected up front when they are not.
func (c *Config) HasCMCC() bool {
	return c.CMCCAuthorization != "" && c.CMCCCookie != ""
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n := cast.ToInt(v); n != 0 {
			return n
		}
	}
	return fallback
}
