package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Storage backend for guest carts and wishlists: memory, redis or sql.
	StorageDriver string
	StoragePrefix string

	// Backend REST API consumed by checkout.
	APIBaseURL string

	FreeShippingThreshold int
	ShippingFee           int

	SessionCheckInterval time.Duration

	// In-memory guest sessions; persisted carts outlive eviction.
	GuestIdleTTL     time.Duration
	GuestMaxSessions int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "storefront")
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DEBUG", false)
	v.SetDefault("STORAGE_DRIVER", "memory")
	v.SetDefault("STORAGE_PREFIX", "guest")
	v.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("FREE_SHIPPING_THRESHOLD", 15000)
	v.SetDefault("SHIPPING_FEE", 200)
	v.SetDefault("SESSION_CHECK_INTERVAL", 5*time.Minute)
	v.SetDefault("GUEST_IDLE_TTL", 30*time.Minute)
	v.SetDefault("GUEST_MAX_SESSIONS", 10000)
}

// Load reads configuration from the environment on top of the defaults.
func Load() *Config {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return &Config{
		AppName:               v.GetString("APP_NAME"),
		Port:                  v.GetString("PORT"),
		Env:                   v.GetString("APP_ENV"),
		Debug:                 v.GetBool("DEBUG"),
		StorageDriver:         v.GetString("STORAGE_DRIVER"),
		StoragePrefix:         v.GetString("STORAGE_PREFIX"),
		APIBaseURL:            v.GetString("API_BASE_URL"),
		FreeShippingThreshold: v.GetInt("FREE_SHIPPING_THRESHOLD"),
		ShippingFee:           v.GetInt("SHIPPING_FEE"),
		SessionCheckInterval:  v.GetDuration("SESSION_CHECK_INTERVAL"),
		GuestIdleTTL:          v.GetDuration("GUEST_IDLE_TTL"),
		GuestMaxSessions:      v.GetInt("GUEST_MAX_SESSIONS"),
	}
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = Load()
	})
}
