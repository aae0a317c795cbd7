package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/shopbot-th/discord-shop-bot/internal/cart"
	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
	"github.com/shopbot-th/discord-shop-bot/internal/checkout"
	"github.com/shopbot-th/discord-shop-bot/internal/config"
	"github.com/shopbot-th/discord-shop-bot/internal/discord"
	"github.com/shopbot-th/discord-shop-bot/internal/ledger"
	"github.com/shopbot-th/discord-shop-bot/internal/shop"
	"github.com/shopbot-th/discord-shop-bot/internal/web"
)

// main wires dependencies and runs the bot plus the keep-alive web server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if cfg.Token == "" {
		logger.Fatal().Msg("DISCORD_BOT_TOKEN is not set")
	}

	catalogSvc := catalog.NewService(catalog.NewJSONRepository(cfg.ProductsFile, logger), logger)
	ledgerSvc := ledger.NewService(ledger.NewNDJSONRepository(cfg.HistoryFile, logger), logger)
	carts := cart.NewManager(cfg.MaxOpenViews)
	checkoutSvc := checkout.NewService(ledgerSvc, checkout.Payment{
		Bank:  cfg.PaymentBank,
		QRURL: cfg.PaymentQRURL,
	}, logger)
	core := shop.NewCore(catalogSvc, ledgerSvc, carts, checkoutSvc, logger)

	srv := web.New(catalogSvc, logger)
	go func() {
		if err := srv.Listen(cfg.Addr); err != nil {
			logger.Error().Err(err).Msg("web server stopped")
		}
	}()

	bot, err := discord.New(discord.Options{
		Token:   cfg.Token,
		GuildID: cfg.GuildID,
		Prefix:  cfg.Prefix,
	}, core, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("discord setup failed")
	}
	if err := bot.Start(); err != nil {
		logger.Fatal().Err(err).Msg("discord connection failed")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	if err := bot.Stop(); err != nil {
		logger.Warn().Err(err).Msg("discord close failed")
	}
	if err := srv.Shutdown(); err != nil {
		logger.Warn().Err(err).Msg("web shutdown failed")
	}
}
