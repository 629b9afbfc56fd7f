package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	IsProduction bool

	// Kafka audit trail. Empty brokers disables audit publishing.
	KafkaBrokers []string
	AuditTopic   string

	// Bound on the wait for a document sequence row lock.
	SequenceLockTimeout time.Duration

	// Size of each account mapping resolution cache.
	MappingCacheSize int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("AUDIT_TOPIC", "ledger.audit")
	viper.SetDefault("SEQUENCE_LOCK_TIMEOUT", "5s")
	viper.SetDefault("MAPPING_CACHE_SIZE", 1024)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	brokers := viper.GetString("KAFKA_BROKERS")
	if brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.AuditTopic = viper.GetString("AUDIT_TOPIC")

	lockTimeoutStr := viper.GetString("SEQUENCE_LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil || lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
		if lockTimeoutStr != "" {
			log.Printf("Warning: Invalid value for SEQUENCE_LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockTimeoutStr, lockTimeout)
		}
	}
	cfg.SequenceLockTimeout = lockTimeout

	cfg.MappingCacheSize = viper.GetInt("MAPPING_CACHE_SIZE")

	return cfg, nil
}
