package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
	"github.com/shopbot-th/discord-shop-bot/internal/shop"
)

// openShop sends a fresh shop message and registers the snapshot under the
// sent message's ID so component callbacks can find it.
func (b *Bot) openShop(s *discordgo.Session, channelID, rawCategory string) error {
	view, err := b.core.OpenShop(rawCategory)
	if err != nil {
		return err
	}
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    emptyShopHeader(),
		Components: shopComponents(view.Products),
	})
	if err != nil {
		return err
	}
	b.core.RegisterView(msg.ID, view)
	return nil
}

func (b *Bot) sendListing(s *discordgo.Session, channelID, rawCategory string, reply func(string)) {
	listing, err := b.core.ListProducts(rawCategory)
	if err != nil {
		if errors.Is(err, shop.ErrNoProducts) {
			reply("❌ ไม่พบสินค้าในหมวด '" + rawCategory + "'")
			return
		}
		reply(b.userMessage(err))
		return
	}
	for _, embed := range listingEmbeds(listing) {
		if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
			b.log.Warn().Err(err).Msg("listing reply failed")
			return
		}
	}
}

// productMessage renders name-specific catalog errors, falling back to the
// generic mapping.
func (b *Bot) productMessage(err error, name string) string {
	switch {
	case errors.Is(err, catalog.ErrDuplicateName):
		return "❌ สินค้า '" + name + "' มีอยู่แล้ว"
	case errors.Is(err, catalog.ErrNotFound):
		return "❌ ไม่พบสินค้า '" + name + "'"
	default:
		return b.userMessage(err)
	}
}
