package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	AMQP          AMQPConfig
	Hold          HoldConfig
	Outbox        OutboxConfig
	Refund        RefundConfig
	Loyalty       LoyaltyConfig
	Email         EmailConfig
	SMS           SMSConfig
	RefundGateway RefundGatewayConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AMQPConfig struct {
	URL          string
	KitchenQueue string
}

type HoldConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	ExpiryBatchSize int
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

type RefundConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

type LoyaltyConfig struct {
	PointValueCents int64
	EarnRate        int64
}

type EmailConfig struct {
	APIKey    string
	FromEmail string
}

type SMSConfig struct {
	GatewayURL string
	APIKey     string
}

type RefundGatewayConfig struct {
	URL    string
	APIKey string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("AMQP_KITCHEN_QUEUE", "kitchen.prep.schedule")
	viper.SetDefault("HOLD_TTL_SECONDS", 300)
	viper.SetDefault("HOLD_CLEANUP_INTERVAL_MS", 15000)
	viper.SetDefault("HOLD_EXPIRY_BATCH_SIZE", 100)
	viper.SetDefault("OUTBOX_POLL_INTERVAL_MS", 5000)
	viper.SetDefault("OUTBOX_BATCH_SIZE", 50)
	viper.SetDefault("OUTBOX_MAX_ATTEMPTS", 5)
	viper.SetDefault("REFUND_POLL_INTERVAL_MS", 10000)
	viper.SetDefault("REFUND_BATCH_SIZE", 50)
	viper.SetDefault("REFUND_MAX_ATTEMPTS", 5)
	viper.SetDefault("LOYALTY_POINT_VALUE_CENTS", 100)
	viper.SetDefault("LOYALTY_EARN_RATE", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		AMQP: AMQPConfig{
			URL:          viper.GetString("AMQP_URL"),
			KitchenQueue: viper.GetString("AMQP_KITCHEN_QUEUE"),
		},
		Hold: HoldConfig{
			TTL:             time.Duration(viper.GetInt("HOLD_TTL_SECONDS")) * time.Second,
			CleanupInterval: time.Duration(viper.GetInt("HOLD_CLEANUP_INTERVAL_MS")) * time.Millisecond,
			ExpiryBatchSize: viper.GetInt("HOLD_EXPIRY_BATCH_SIZE"),
		},
		Outbox: OutboxConfig{
			PollInterval: time.Duration(viper.GetInt("OUTBOX_POLL_INTERVAL_MS")) * time.Millisecond,
			BatchSize:    viper.GetInt("OUTBOX_BATCH_SIZE"),
			MaxAttempts:  viper.GetInt("OUTBOX_MAX_ATTEMPTS"),
		},
		Refund: RefundConfig{
			PollInterval: time.Duration(viper.GetInt("REFUND_POLL_INTERVAL_MS")) * time.Millisecond,
			BatchSize:    viper.GetInt("REFUND_BATCH_SIZE"),
			MaxAttempts:  viper.GetInt("REFUND_MAX_ATTEMPTS"),
		},
		Loyalty: LoyaltyConfig{
			PointValueCents: viper.GetInt64("LOYALTY_POINT_VALUE_CENTS"),
			EarnRate:        viper.GetInt64("LOYALTY_EARN_RATE"),
		},
		Email: EmailConfig{
			APIKey:    viper.GetString("SENDGRID_API_KEY"),
			FromEmail: viper.GetString("SENDGRID_FROM_EMAIL"),
		},
		SMS: SMSConfig{
			GatewayURL: viper.GetString("SMS_GATEWAY_URL"),
			APIKey:     viper.GetString("SMS_GATEWAY_API_KEY"),
		},
		RefundGateway: RefundGatewayConfig{
			URL:    viper.GetString("REFUND_GATEWAY_URL"),
			APIKey: viper.GetString("REFUND_GATEWAY_API_KEY"),
		},
	}

	return config, nil
}
