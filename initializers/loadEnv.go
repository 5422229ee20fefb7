package initializers

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string        `env:"DATABASE_URL"`
	RedisAddr   string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"336h"`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:4200"`
	S3Bucket    string        `env:"S3_BUCKET" envDefault:"amexan"`

	// SecureCookie marks the session cookie Secure; enable behind HTTPS.
	SecureCookie bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	Razorpay RazorpayConfig `envPrefix:"RAZORPAY_"`
	Checkout CheckoutConfig `envPrefix:"CHECKOUT_"`
	Mail     MailConfig
	Kafka    KafkaConfig `envPrefix:"KAFKA_"`
}

type RazorpayConfig struct {
	KeyID     string        `env:"KEY_ID"`
	KeySecret string        `env:"KEY_SECRET,required,notEmpty"`
	BaseURL   string        `env:"BASE_URL" envDefault:"https://api.razorpay.com"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
	Currency  string        `env:"CURRENCY" envDefault:"INR"`
}

type CheckoutConfig struct {
	TaxPercent               int           `env:"TAX_PERCENT" envDefault:"10"`
	MaxQuantity              int           `env:"MAX_QUANTITY" envDefault:"99"`
	ClearCartOnFailedPayment bool          `env:"CLEAR_CART_ON_FAILED_PAYMENT" envDefault:"false"`
	NotifyTimeout            time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
}

type MailConfig struct {
	From     string `env:"FROM_EMAIL"`
	Password string `env:"FROM_EMAIL_PASSWORD"`
	Host     string `env:"FROM_EMAIL_SMTP"`
	Address  string `env:"SMTP_ADDRESS"`
}

type KafkaConfig struct {
	Brokers     string `env:"BROKERS"`
	NotifyTopic string `env:"NOTIFY_TOPIC" envDefault:"order-notifications"`
}

func (k KafkaConfig) Enabled() bool {
	return strings.TrimSpace(k.Brokers) != ""
}

// LoadEnv reads .env when present and parses the process environment.
func LoadEnv() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := ParseConfig()
	if err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}
	return cfg
}

func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
