package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
	"github.com/shopbot-th/discord-shop-bot/internal/shop"
)

func categoryChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Label(),
			Value: string(c),
		})
	}
	return choices
}

// commandDefinitions is the structured command tree. Names match the
// original bot; option names are localized the same way.
func commandDefinitions() []*discordgo.ApplicationCommand {
	categoryOpt := func(name string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: "หมวดสินค้า",
			Required:    required,
			Choices:     categoryChoices(),
		}
	}
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ร้าน",
			Description: "เปิดร้านค้า",
			Options:     []*discordgo.ApplicationCommandOption{categoryOpt("หมวด", false)},
		},
		{
			Name:        "สินค้าทั้งหมด",
			Description: "แสดงรายการสินค้าทั้งหมด",
			Options:     []*discordgo.ApplicationCommandOption{categoryOpt("หมวด", false)},
		},
		{
			Name:        "เพิ่มสินค้า",
			Description: "เพิ่มสินค้าใหม่ (สำหรับแอดมินเท่านั้น)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "ชื่อ", Description: "ชื่อสินค้า", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "ราคา", Description: "ราคาสินค้า", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "อีโมจิ", Description: "อีโมจิประจำสินค้า", Required: true},
				categoryOpt("หมวด", false),
			},
		},
		{
			Name:        "ลบสินค้า",
			Description: "ลบสินค้า (สำหรับแอดมินเท่านั้น)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "ชื่อ", Description: "ชื่อสินค้า", Required: true},
			},
		},
		{
			Name:        "แก้ไขสินค้า",
			Description: "แก้ไขสินค้า (สำหรับแอดมินเท่านั้น)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "ชื่อ", Description: "ชื่อสินค้าที่จะแก้ไข", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "ชื่อใหม่", Description: "ชื่อใหม่", Required: false},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "ราคาใหม่", Description: "ราคาใหม่", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "อีโมจิใหม่", Description: "อีโมจิใหม่", Required: false},
				categoryOpt("หมวดใหม่", false),
			},
		},
		{
			Name:        "ประวัติ",
			Description: "ดูประวัติการซื้อ (สำหรับแอดมินเท่านั้น)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "จำนวน", Description: "จำนวนรายการ", Required: false},
			},
		},
		{
			Name:        "ช่วยเหลือ",
			Description: "แสดงข้อมูลช่วยเหลือ",
		},
	}
}

func (b *Bot) registerCommands(s *discordgo.Session) {
	if _, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, b.guildID, commandDefinitions()); err != nil {
		b.log.Error().Err(err).Msg("slash command registration failed")
		return
	}
	b.log.Info().Msg("slash commands registered")
}

type slashOptions map[string]*discordgo.ApplicationCommandInteractionDataOption

func (o slashOptions) str(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o slashOptions) strPtr(name string) *string {
	if opt, ok := o[name]; ok {
		v := opt.StringValue()
		return &v
	}
	return nil
}

func (o slashOptions) intPtr(name string) *int {
	if opt, ok := o[name]; ok {
		v := int(opt.IntValue())
		return &v
	}
	return nil
}

func (b *Bot) handleSlash(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	op, shortcut, ok := shop.Resolve(data.Name)
	if !ok {
		b.respondEphemeral(s, i, "❌ ไม่รู้จักคำสั่งนี้")
		return
	}
	opts := slashOptions{}
	for _, o := range data.Options {
		opts[o.Name] = o
	}
	actor := b.actorFromInteraction(i)

	switch op {
	case shop.OpOpenShop:
		raw := string(shortcut)
		if raw == "" {
			raw = opts.str("หมวด")
		}
		b.slashOpenShop(s, i, raw)

	case shop.OpListProducts:
		b.slashListing(s, i, opts.str("หมวด"))

	case shop.OpAddProduct:
		price := 0
		if p := opts.intPtr("ราคา"); p != nil {
			price = *p
		}
		p, err := b.core.AddProduct(actor, opts.str("ชื่อ"), price, opts.str("อีโมจิ"), opts.str("หมวด"))
		if err != nil {
			b.respondEphemeral(s, i, b.productMessage(err, opts.str("ชื่อ")))
			return
		}
		b.respondPublic(s, i, "✅ เพิ่มสินค้า "+p.Emoji+" "+p.Name+" เรียบร้อยแล้ว")

	case shop.OpRemoveProduct:
		name := opts.str("ชื่อ")
		p, err := b.core.RemoveProduct(actor, name)
		if err != nil {
			b.respondEphemeral(s, i, b.productMessage(err, name))
			return
		}
		b.respondPublic(s, i, "✅ ลบสินค้า "+p.Emoji+" "+p.Name+" เรียบร้อยแล้ว")

	case shop.OpEditProduct:
		name := opts.str("ชื่อ")
		patch := shop.EditPatch{
			Name:     opts.strPtr("ชื่อใหม่"),
			Price:    opts.intPtr("ราคาใหม่"),
			Emoji:    opts.strPtr("อีโมจิใหม่"),
			Category: opts.strPtr("หมวดใหม่"),
		}
		p, err := b.core.EditProduct(actor, name, patch)
		if err != nil {
			b.respondEphemeral(s, i, b.productMessage(err, name))
			return
		}
		b.respondPublic(s, i, "✅ แก้ไขสินค้า "+p.Emoji+" "+p.Name+" เรียบร้อยแล้ว")

	case shop.OpHistory:
		count := 0
		if n := opts.intPtr("จำนวน"); n != nil {
			count = *n
		}
		records, err := b.core.History(actor, count)
		if err != nil {
			b.respondEphemeral(s, i, b.userMessage(err))
			return
		}
		b.respondEmbeds(s, i, []*discordgo.MessageEmbed{historyEmbed(records)})

	case shop.OpHelp:
		b.respondEmbeds(s, i, []*discordgo.MessageEmbed{helpEmbed("/", b.prefix)})
	}
}

// slashOpenShop answers the interaction with the shop message itself, then
// looks the sent message up to register the view under its ID.
func (b *Bot) slashOpenShop(s *discordgo.Session, i *discordgo.InteractionCreate, rawCategory string) {
	view, err := b.core.OpenShop(rawCategory)
	if err != nil {
		b.respondEphemeral(s, i, b.userMessage(err))
		return
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    emptyShopHeader(),
			Components: shopComponents(view.Products),
		},
	})
	if err != nil {
		b.log.Error().Err(err).Msg("shop response failed")
		return
	}
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		b.log.Error().Err(err).Msg("shop message lookup failed")
		return
	}
	b.core.RegisterView(msg.ID, view)
}

func (b *Bot) slashListing(s *discordgo.Session, i *discordgo.InteractionCreate, rawCategory string) {
	listing, err := b.core.ListProducts(rawCategory)
	if err != nil {
		if errors.Is(err, shop.ErrNoProducts) {
			b.respondEphemeral(s, i, "❌ ไม่พบสินค้าในหมวด '"+rawCategory+"'")
			return
		}
		b.respondEphemeral(s, i, b.userMessage(err))
		return
	}
	embeds := listingEmbeds(listing)
	b.respondEmbeds(s, i, embeds[:1])
	for _, embed := range embeds[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		}); err != nil {
			b.log.Warn().Err(err).Msg("listing followup failed")
			return
		}
	}
}

func (b *Bot) respondPublic(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		b.log.Error().Err(err).Msg("response failed")
	}
}

func (b *Bot) respondEmbeds(s *discordgo.Session, i *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: embeds},
	})
	if err != nil {
		b.log.Error().Err(err).Msg("embed response failed")
	}
}
