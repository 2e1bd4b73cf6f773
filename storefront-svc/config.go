package main

import (
	"time"

	"foodie-storefront/config"
)

type Config struct {
	Port         string
	FoodieOSURL  string
	NominatimURL string
	Redis        bool
	OrdersTopic  string
	SessionTTL   time.Duration
	MenuTTL      time.Duration
	OTPDelay     time.Duration
	ScanAttempts int
	PayeeAddress string
	PayeeName    string
	PayeeNote    string
}

func Load() Config {
	return Config{
		Port:         config.GetEnv("PORT", "8082"),
		FoodieOSURL:  config.GetEnv("FOODIEOS_URL", "https://foodieos-786353173154.asia-south1.run.app"),
		NominatimURL: config.GetEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		Redis:        config.GetEnv("CART_STORE", "redis") == "redis",
		OrdersTopic:  config.GetEnv("ORDERS_TOPIC", "orders"),
		SessionTTL:   config.GetEnvDuration("CART_SESSION_TTL", 24*time.Hour),
		MenuTTL:      config.GetEnvDuration("MENU_CACHE_TTL", 5*time.Minute),
		OTPDelay:     config.GetEnvDuration("OTP_DELAY", time.Second),
		ScanAttempts: config.GetEnvInt("QR_SCAN_ATTEMPTS", 3),
		PayeeAddress: config.GetEnv("UPI_PAYEE_ADDRESS", "foodie@upi"),
		PayeeName:    config.GetEnv("UPI_PAYEE_NAME", "Foodie Restaurant"),
		PayeeNote:    config.GetEnv("UPI_PAYEE_NOTE", "Food Order Payment"),
	}
}
