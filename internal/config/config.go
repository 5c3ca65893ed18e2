package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"facethewall/internal/locale"
	"facethewall/internal/musicapi"
	"facethewall/internal/store"
)

// DefaultSpotifyArtistID is the band's Spotify artist id.
const DefaultSpotifyArtistID = "6zHb8dmI7oyFot5yNStuH1"

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	CORS     CORSConfig
	Catalog  CatalogConfig
	Locale   LocaleConfig
	Images   ImagesConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
	// CacheMaxAge is how long shared caches may keep a response, in seconds.
	CacheMaxAge int
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// CatalogConfig selects and configures the music catalog.
type CatalogConfig struct {
	Provider musicapi.MusicProvider
	Timeout  time.Duration

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyArtistID     string

	AppleMusicKeyID      string
	AppleMusicTeamID     string
	AppleMusicPrivateKey string
	AppleMusicArtistID   string
	AppleMusicStorefront string
}

// ArtistID returns the artist id for the selected provider.
func (c CatalogConfig) ArtistID() string {
	if c.Provider == musicapi.ProviderAppleMusic {
		return c.AppleMusicArtistID
	}
	return c.SpotifyArtistID
}

// MusicAPI converts the settings into client configuration.
func (c CatalogConfig) MusicAPI() musicapi.Config {
	return musicapi.Config{
		SpotifyClientID:      c.SpotifyClientID,
		SpotifyClientSecret:  c.SpotifyClientSecret,
		AppleMusicKeyID:      c.AppleMusicKeyID,
		AppleMusicTeamID:     c.AppleMusicTeamID,
		AppleMusicPrivateKey: c.AppleMusicPrivateKey,
		AppleMusicStorefront: c.AppleMusicStorefront,
		RequestTimeout:       c.Timeout,
	}
}

// LocaleConfig holds the site language settings
type LocaleConfig struct {
	Default string
}

// ImagesConfig names the table the site photos are read from
type ImagesConfig struct {
	Table string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadEnvFiles reads config/local.env and .env into the environment. Missing
// files are ignored and variables already set win.
func LoadEnvFiles() {
	for _, path := range []string{"config/local.env", ".env"} {
		_ = godotenv.Load(path)
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	LoadEnvFiles()

	cfg := &Config{}

	db, err := LoadDatabase()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	cfg.Database = db

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	cfg.loadCORS()
	if err := cfg.loadCatalog(); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	cfg.Locale.Default = getEnvOrDefault("DEFAULT_LOCALE", string(locale.Default))
	cfg.Images.Table = getEnvOrDefault("IMAGE_TABLE", store.DefaultImageTable)
	if err := cfg.loadLogging(); err != nil {
		return nil, fmt.Errorf("load logging config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads DATABASE_URL, or builds it from the DB_* variables.
func LoadDatabase() (DatabaseConfig, error) {
	var db DatabaseConfig
	db.URL = os.Getenv("DATABASE_URL")
	if db.URL != "" {
		return db, nil
	}

	db.Host = getEnvOrDefault("DB_HOST", "localhost")
	db.User = os.Getenv("DB_USER")
	db.Password = os.Getenv("DB_PASSWORD")
	db.Name = os.Getenv("DB_NAME")
	db.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return db, err
	}
	db.Port = port

	if db.Host != "" && db.User != "" && db.Name != "" {
		u := url.URL{
			Scheme:   "postgresql",
			User:     url.UserPassword(db.User, db.Password),
			Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
			Path:     "/" + db.Name,
			RawQuery: url.Values{"sslmode": {db.SSLMode}}.Encode(),
		}
		db.URL = u.String()
	}
	return db, nil
}

func (c *Config) loadServer() error {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return err
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")

	maxAge, err := getEnvInt("CACHE_MAX_AGE", 60)
	if err != nil {
		return err
	}
	c.Server.CacheMaxAge = maxAge
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default for local development
		c.CORS.AllowedOrigins = []string{"http://localhost:3000"}
		return
	}
	for _, origin := range strings.Split(originsEnv, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, origin)
		}
	}
}

func (c *Config) loadCatalog() error {
	c.Catalog.Provider = musicapi.MusicProvider(getEnvOrDefault("CATALOG_PROVIDER", string(musicapi.ProviderSpotify)))

	timeout, err := time.ParseDuration(getEnvOrDefault("CATALOG_TIMEOUT", "10s"))
	if err != nil {
		return fmt.Errorf("invalid CATALOG_TIMEOUT: %w", err)
	}
	c.Catalog.Timeout = timeout

	c.Catalog.SpotifyClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	c.Catalog.SpotifyClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	c.Catalog.SpotifyArtistID = getEnvOrDefault("SPOTIFY_ARTIST_ID", DefaultSpotifyArtistID)

	c.Catalog.AppleMusicKeyID = os.Getenv("APPLE_MUSIC_KEY_ID")
	c.Catalog.AppleMusicTeamID = os.Getenv("APPLE_MUSIC_TEAM_ID")
	// Keys pasted into a single env line carry escaped newlines.
	c.Catalog.AppleMusicPrivateKey = strings.ReplaceAll(os.Getenv("APPLE_MUSIC_PRIVATE_KEY"), `\n`, "\n")
	c.Catalog.AppleMusicArtistID = os.Getenv("APPLE_MUSIC_ARTIST_ID")
	c.Catalog.AppleMusicStorefront = getEnvOrDefault("APPLE_MUSIC_STOREFRONT", "sk")
	return nil
}

func (c *Config) loadLogging() error {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
	c.Logging.File = os.Getenv("LOG_FILE")

	var err error
	if c.Logging.MaxSizeMB, err = getEnvInt("LOG_MAX_SIZE_MB", 100); err != nil {
		return err
	}
	if c.Logging.MaxBackups, err = getEnvInt("LOG_MAX_BACKUPS", 5); err != nil {
		return err
	}
	if c.Logging.MaxAgeDays, err = getEnvInt("LOG_MAX_AGE_DAYS", 30); err != nil {
		return err
	}
	return nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}
	if c.Server.CacheMaxAge < 0 {
		errors = append(errors, "CACHE_MAX_AGE must not be negative")
	}

	switch c.Catalog.Provider {
	case musicapi.ProviderSpotify:
		if c.Catalog.SpotifyClientID == "" || c.Catalog.SpotifyClientSecret == "" {
			errors = append(errors, "SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
		}
		if c.Catalog.SpotifyArtistID == "" {
			errors = append(errors, "SPOTIFY_ARTIST_ID is required")
		}
	case musicapi.ProviderAppleMusic:
		if c.Catalog.AppleMusicKeyID == "" || c.Catalog.AppleMusicTeamID == "" || c.Catalog.AppleMusicPrivateKey == "" {
			errors = append(errors, "APPLE_MUSIC_KEY_ID, APPLE_MUSIC_TEAM_ID and APPLE_MUSIC_PRIVATE_KEY are required")
		}
		if c.Catalog.AppleMusicArtistID == "" {
			errors = append(errors, "APPLE_MUSIC_ARTIST_ID is required")
		}
	default:
		errors = append(errors, "CATALOG_PROVIDER must be one of: spotify, apple_music")
	}
	if c.Catalog.Timeout <= 0 {
		errors = append(errors, "CATALOG_TIMEOUT must be positive")
	}

	if code, err := locale.ParseCode(c.Locale.Default); err != nil {
		errors = append(errors, fmt.Sprintf("DEFAULT_LOCALE: %v", err))
	} else if !slices.Contains(locale.Supported, code) {
		errors = append(errors, fmt.Sprintf("DEFAULT_LOCALE must be one of: %s", joinCodes(locale.Supported)))
	}

	if c.Images.Table == "" {
		errors = append(errors, "IMAGE_TABLE must not be empty")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func joinCodes(codes []locale.Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
