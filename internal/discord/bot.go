// Package discord adapts the shop command core onto the Discord gateway:
// prefixed free-text commands, slash commands, shop-view buttons and the
// quantity modal. Adapters stay thin; every decision lives in the core.
package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/shopbot-th/discord-shop-bot/internal/cart"
	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
	"github.com/shopbot-th/discord-shop-bot/internal/ledger"
	"github.com/shopbot-th/discord-shop-bot/internal/shop"
)

// Options configures the gateway adapter.
type Options struct {
	Token   string
	GuildID string // empty registers the command tree globally
	Prefix  string
}

// Bot wires the command core to a Discord session.
type Bot struct {
	session *discordgo.Session
	core    *shop.Core
	prefix  string
	guildID string
	log     zerolog.Logger
}

func New(opts Options, core *shop.Core, log zerolog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "!"
	}
	b := &Bot{
		session: s,
		core:    core,
		prefix:  prefix,
		guildID: opts.GuildID,
		log:     log.With().Str("component", "discord").Logger(),
	}
	s.AddHandler(b.onReady)
	s.AddHandler(b.onMessageCreate)
	s.AddHandler(b.onInteractionCreate)
	return b, nil
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("user", r.User.String()).Msg("bot is ready")
	b.registerCommands(s)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// a handler failure must never take the gateway loop down
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Msg("interaction handler panicked")
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSlash(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		b.handleModal(s, i)
	}
}

func (b *Bot) actorFromInteraction(i *discordgo.InteractionCreate) shop.Actor {
	var u *discordgo.User
	admin := false
	if i.Member != nil {
		u = i.Member.User
		admin = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	} else {
		u = i.User
	}
	return shop.Actor{ID: u.ID, Name: u.String(), Mention: u.Mention(), Admin: admin}
}

func (b *Bot) actorFromMessage(s *discordgo.Session, m *discordgo.MessageCreate) shop.Actor {
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		b.log.Warn().Err(err).Str("user", m.Author.ID).Msg("permission lookup failed")
	}
	admin := err == nil && perms&discordgo.PermissionAdministrator != 0
	return shop.Actor{ID: m.Author.ID, Name: m.Author.String(), Mention: m.Author.Mention(), Admin: admin}
}

// userMessage maps core errors onto the Thai copy users see. Unexpected
// errors collapse into a generic failure line; the details go to the log.
func (b *Bot) userMessage(err error) string {
	switch {
	case errors.Is(err, shop.ErrPermissionDenied):
		return "❌ คุณไม่มีสิทธิ์ใช้คำสั่งนี้"
	case errors.Is(err, shop.ErrViewExpired):
		return "❌ หน้าร้านนี้หมดอายุแล้ว กรุณาเปิดร้านใหม่"
	case errors.Is(err, shop.ErrNoHistory):
		return "❌ ไม่มีประวัติการซื้อ"
	case errors.Is(err, catalog.ErrInvalidCategory):
		return "❌ ไม่พบหมวดนี้ หมวดที่มี: " + shop.CategoryHint()
	case errors.Is(err, catalog.ErrInvalidPrice):
		return "❌ ราคาต้องมากกว่าหรือเท่ากับ 0"
	case errors.Is(err, cart.ErrQuantityNegative):
		return "❌ จำนวนต้องมากกว่าหรือเท่ากับ 0"
	case errors.Is(err, cart.ErrQuantityTooLarge):
		return "❌ จำนวนต้องไม่เกิน 100"
	case errors.Is(err, cart.ErrQuantityNotNumeric):
		return "❌ กรุณาใส่จำนวนเป็นตัวเลขเท่านั้น"
	case errors.Is(err, ledger.ErrWriteFailed):
		return "❌ บันทึกคำสั่งซื้อไม่สำเร็จ กรุณาลองใหม่อีกครั้ง"
	default:
		b.log.Error().Err(err).Msg("command failed")
		return "❌ เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"
	}
}
