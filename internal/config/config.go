package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the process-wide configuration, loaded once at startup and
// immutable thereafter. Nothing else reads ambient environment variables.
type Settings struct {
	ServerPort int
	Debug      bool

	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	RedisAddr     string
	RedisPassword string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3UseSSL    bool

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CacheTTLItem     time.Duration
	CacheTTLIndex    time.Duration
	CacheTTLFeatured time.Duration

	// requests per minute, per client IP
	RateAuth     int
	RatePublic   int
	RateAdmin    int
	RateDownload int
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	required := []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"JWT_SECRET",
	}
	for _, key := range required {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("S3_REGION", "us-east-005")
	viper.SetDefault("S3_USE_SSL", true)
	viper.SetDefault("ACCESS_TOKEN_TTL", 900)       // 15 min
	viper.SetDefault("REFRESH_TOKEN_TTL", 2592000)  // 30 days
	viper.SetDefault("CACHE_TTL_ITEM", 120)
	viper.SetDefault("CACHE_TTL_INDEX", 120)
	viper.SetDefault("CACHE_TTL_FEATURED", 300)
	viper.SetDefault("RATE_AUTH", 5)
	viper.SetDefault("RATE_PUBLIC", 100)
	viper.SetDefault("RATE_ADMIN", 60)
	viper.SetDefault("RATE_DOWNLOAD", 10)

	return &Settings{
		ServerPort: viper.GetInt("SERVER_PORT"),
		Debug:      viper.GetBool("DEBUG"),

		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		S3Endpoint:  viper.GetString("S3_ENDPOINT"),
		S3AccessKey: viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey: viper.GetString("S3_SECRET_KEY"),
		S3Bucket:    viper.GetString("S3_BUCKET"),
		S3Region:    viper.GetString("S3_REGION"),
		S3UseSSL:    viper.GetBool("S3_USE_SSL"),

		JWTSecret:       viper.GetString("JWT_SECRET"),
		AccessTokenTTL:  time.Duration(viper.GetInt("ACCESS_TOKEN_TTL")) * time.Second,
		RefreshTokenTTL: time.Duration(viper.GetInt("REFRESH_TOKEN_TTL")) * time.Second,

		CacheTTLItem:     time.Duration(viper.GetInt("CACHE_TTL_ITEM")) * time.Second,
		CacheTTLIndex:    time.Duration(viper.GetInt("CACHE_TTL_INDEX")) * time.Second,
		CacheTTLFeatured: time.Duration(viper.GetInt("CACHE_TTL_FEATURED")) * time.Second,

		RateAuth:     viper.GetInt("RATE_AUTH"),
		RatePublic:   viper.GetInt("RATE_PUBLIC"),
		RateAdmin:    viper.GetInt("RATE_ADMIN"),
		RateDownload: viper.GetInt("RATE_DOWNLOAD"),
	}, nil
}
