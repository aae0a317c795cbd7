package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/shopbot-th/discord-shop-bot/internal/cart"
	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
	"github.com/shopbot-th/discord-shop-bot/internal/checkout"
	"github.com/shopbot-th/discord-shop-bot/internal/shop"
)

const (
	customIDReset    = "shop_reset"
	customIDConfirm  = "shop_confirm"
	customIDProduct  = "shop_product_" // + product index
	customIDQuantity = "shop_qty_"     // + viewID _ index
	quantityInputID  = "quantity"
	buttonsPerRow    = 5
	// Discord allows 25 components per message; one row is reserved for
	// reset and confirm.
	maxProductButtons = 23
)

// shopHeader renders the full shop message body around a cart summary.
func shopHeader(sum shop.Summary) string {
	if sum.Total == 0 {
		return "🛍️ รายการที่เลือก:\n" + cart.EmptySummary
	}
	return fmt.Sprintf("🛍️ รายการที่เลือก:\n%s\n\n💵 ยอดรวม: %d฿", sum.Text, sum.Total)
}

func emptyShopHeader() string {
	return shopHeader(shop.Summary{Text: cart.EmptySummary})
}

// shopComponents builds one button per product in rows of five, followed by
// the reset and confirm buttons. Views past the component budget show the
// first products only.
func shopComponents(products []catalog.Product) []discordgo.MessageComponent {
	if len(products) > maxProductButtons {
		products = products[:maxProductButtons]
	}

	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for idx, p := range products {
		row = append(row, discordgo.Button{
			Label:    fmt.Sprintf("%s %s - %d฿", p.Emoji, p.Name, p.Price),
			Style:    discordgo.PrimaryButton,
			CustomID: customIDProduct + strconv.Itoa(idx),
		})
		if len(row) == buttonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "🗑️ ล้างตะกร้า", Style: discordgo.DangerButton, CustomID: customIDReset},
		discordgo.Button{Label: "✅ ยืนยันการซื้อ", Style: discordgo.SuccessButton, CustomID: customIDConfirm},
	}})
	return rows
}

// quantityModalID encodes the view and product a modal submission belongs
// to, so the handler does not depend on the interaction carrying a message.
func quantityModalID(viewID string, index int) string {
	return fmt.Sprintf("%s%s_%d", customIDQuantity, viewID, index)
}

func parseQuantityModalID(customID string) (viewID string, index int, ok bool) {
	rest, found := strings.CutPrefix(customID, customIDQuantity)
	if !found {
		return "", 0, false
	}
	sep := strings.LastIndex(rest, "_")
	if sep < 0 {
		return "", 0, false
	}
	index, err := strconv.Atoi(rest[sep+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:sep], index, true
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	viewID := i.Message.ID
	actor := b.actorFromInteraction(i)

	switch {
	case data.CustomID == customIDReset:
		if err := b.core.ResetCart(viewID, actor); err != nil {
			b.respondEphemeral(s, i, b.userMessage(err))
			return
		}
		b.respondUpdate(s, i, emptyShopHeader())

	case data.CustomID == customIDConfirm:
		b.handleConfirm(s, i, viewID, actor)

	case strings.HasPrefix(data.CustomID, customIDProduct):
		idx, err := strconv.Atoi(strings.TrimPrefix(data.CustomID, customIDProduct))
		if err != nil {
			b.log.Warn().Str("custom_id", data.CustomID).Msg("malformed component id")
			return
		}
		product, err := b.core.BeginQuantity(viewID, actor, idx)
		if err != nil {
			b.respondEphemeral(s, i, b.userMessage(err))
			return
		}
		b.respondQuantityModal(s, i, viewID, idx, product)
	}
}

func (b *Bot) respondQuantityModal(s *discordgo.Session, i *discordgo.InteractionCreate, viewID string, index int, p catalog.Product) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: quantityModalID(viewID, index),
			Title:    "จำนวน " + p.Name,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    quantityInputID,
						Label:       "ใส่จำนวน " + p.Name + " ที่ต้องการ",
						Style:       discordgo.TextInputShort,
						Placeholder: "ใส่จำนวน",
						Value:       "1",
						Required:    true,
						MinLength:   1,
						MaxLength:   3,
					},
				}},
			},
		},
	})
	if err != nil {
		b.log.Error().Err(err).Msg("failed to open quantity modal")
	}
}

func (b *Bot) handleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	viewID, index, ok := parseQuantityModalID(data.CustomID)
	if !ok {
		b.log.Warn().Str("custom_id", data.CustomID).Msg("malformed modal id")
		return
	}

	raw := ""
	if len(data.Components) > 0 {
		if row, ok := data.Components[0].(*discordgo.ActionsRow); ok && len(row.Components) > 0 {
			if input, ok := row.Components[0].(*discordgo.TextInput); ok {
				raw = input.Value
			}
		}
	}

	actor := b.actorFromInteraction(i)
	sum, err := b.core.SetQuantity(viewID, actor, index, raw)
	if err != nil {
		// the shop message stays as it was; the user can press the button
		// again and resubmit
		b.respondEphemeral(s, i, b.userMessage(err))
		return
	}
	b.respondUpdate(s, i, shopHeader(sum))
}

func (b *Bot) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, viewID string, actor shop.Actor) {
	receipt, err := b.core.Confirm(viewID, actor)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			b.respondEphemeral(s, i, "❗ กรุณาเลือกสินค้าก่อน")
			return
		}
		b.respondEphemeral(s, i, b.userMessage(err))
		return
	}

	// the purchase is durable from here on; receipts are best-effort
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{receiptEmbed(receipt, actor)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		b.log.Warn().Err(err).Msg("private receipt failed")
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{receiptEmbed(receipt, actor), paymentEmbed(receipt, actor)},
	}); err != nil {
		b.log.Warn().Err(err).Msg("public receipt failed")
	}

	content := emptyShopHeader()
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: i.ChannelID,
		ID:      viewID,
		Content: &content,
	}); err != nil {
		b.log.Warn().Err(err).Msg("shop view refresh failed")
	}
}

// respondUpdate edits the message the component or modal belongs to,
// leaving its buttons in place.
func (b *Bot) respondUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		b.log.Error().Err(err).Msg("message update failed")
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Error().Err(err).Msg("ephemeral response failed")
	}
}
