package config

import (
	"os"
	"strconv"
)

// Config holds environment-driven configuration.
type Config struct {
	Token        string
	GuildID      string
	Addr         string
	ProductsFile string
	HistoryFile  string
	Prefix       string
	PaymentBank  string
	PaymentQRURL string
	MaxOpenViews int
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from environment variables.
func Load() Config {
	maxViews := 0
	if v := os.Getenv("SHOP_MAX_OPEN_VIEWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxViews = n
		}
	}

	return Config{
		Token:        os.Getenv("DISCORD_BOT_TOKEN"),
		GuildID:      os.Getenv("DISCORD_GUILD_ID"),
		Addr:         getenv("SHOP_ADDR", ":8080"),
		ProductsFile: getenv("SHOP_PRODUCTS_FILE", "products.json"),
		HistoryFile:  getenv("SHOP_HISTORY_FILE", "history.json"),
		Prefix:       getenv("SHOP_COMMAND_PREFIX", "!"),
		PaymentBank:  getenv("SHOP_PAYMENT_BANK", "SCB (ไทยพาณิชย์)"),
		PaymentQRURL: os.Getenv("SHOP_PAYMENT_QR_URL"),
		MaxOpenViews: maxViews,
	}
}
