package discord

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/shlex"

	"github.com/shopbot-th/discord-shop-bot/internal/shop"
)

// onMessageCreate is the free-text command surface: `!command args...` with
// double quotes around arguments that contain spaces.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Msg("message handler panicked")
		}
	}()

	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.prefix) {
		return
	}

	fields, err := shlex.Split(strings.TrimPrefix(m.Content, b.prefix))
	if err != nil || len(fields) == 0 {
		return
	}
	op, shortcut, ok := shop.Resolve(fields[0])
	if !ok {
		// unknown commands are ignored, like the original bot
		return
	}
	args := fields[1:]
	actor := b.actorFromMessage(s, m)

	reply := func(content string) {
		if _, err := s.ChannelMessageSend(m.ChannelID, content); err != nil {
			b.log.Warn().Err(err).Msg("reply failed")
		}
	}

	switch op {
	case shop.OpOpenShop:
		raw := string(shortcut)
		if raw == "" && len(args) > 0 {
			raw = args[0]
		}
		if err := b.openShop(s, m.ChannelID, raw); err != nil {
			reply(b.userMessage(err))
		}

	case shop.OpListProducts:
		raw := ""
		if len(args) > 0 {
			raw = args[0]
		}
		b.sendListing(s, m.ChannelID, raw, reply)

	case shop.OpAddProduct:
		b.prefixAddProduct(actor, args, reply)

	case shop.OpRemoveProduct:
		if len(args) == 0 {
			reply("❌ กรุณาระบุชื่อสินค้า")
			return
		}
		name := strings.Join(args, " ")
		p, err := b.core.RemoveProduct(actor, name)
		if err != nil {
			reply(b.productMessage(err, name))
			return
		}
		reply("✅ ลบสินค้า " + p.Emoji + " " + p.Name + " เรียบร้อยแล้ว")

	case shop.OpEditProduct:
		b.prefixEditProduct(actor, args, reply)

	case shop.OpHistory:
		count := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				reply("❌ จำนวนต้องเป็นตัวเลขเท่านั้น")
				return
			}
			count = n
		}
		records, err := b.core.History(actor, count)
		if err != nil {
			reply(b.userMessage(err))
			return
		}
		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, historyEmbed(records)); err != nil {
			b.log.Warn().Err(err).Msg("history reply failed")
		}

	case shop.OpHelp:
		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, helpEmbed(b.prefix, "/")); err != nil {
			b.log.Warn().Err(err).Msg("help reply failed")
		}
	}
}

func (b *Bot) prefixAddProduct(actor shop.Actor, args []string, reply func(string)) {
	if len(args) < 3 {
		reply("❌ รูปแบบ: " + b.prefix + "เพิ่มสินค้า [ชื่อ] [ราคา] [อีโมจิ] [หมวด]")
		return
	}
	price, err := strconv.Atoi(args[1])
	if err != nil {
		reply("❌ ราคาต้องเป็นตัวเลขเท่านั้น")
		return
	}
	category := ""
	if len(args) > 3 {
		category = args[3]
	}
	p, err := b.core.AddProduct(actor, args[0], price, args[2], category)
	if err != nil {
		reply(b.productMessage(err, args[0]))
		return
	}
	reply("✅ เพิ่มสินค้า " + p.Emoji + " " + p.Name + " ราคา " + strconv.Itoa(p.Price) + "฿ ในหมวด " + p.CategoryLabel() + " เรียบร้อยแล้ว")
}

// prefixEditProduct reads positional optional fields the way the original
// bot did: name, new name, new price, new emoji, new category. A literal
// "-" keeps a field unchanged.
func (b *Bot) prefixEditProduct(actor shop.Actor, args []string, reply func(string)) {
	if len(args) < 2 {
		reply("❌ รูปแบบ: " + b.prefix + "แก้ไขสินค้า [ชื่อ] [ชื่อใหม่] [ราคาใหม่] [อีโมจิใหม่] [หมวดใหม่]")
		return
	}
	name := args[0]
	patch := shop.EditPatch{}
	set := func(i int, dst **string) {
		if len(args) > i && args[i] != "-" {
			v := args[i]
			*dst = &v
		}
	}
	set(1, &patch.Name)
	if len(args) > 2 && args[2] != "-" {
		price, err := strconv.Atoi(args[2])
		if err != nil {
			reply("❌ ราคาต้องเป็นตัวเลขเท่านั้น")
			return
		}
		patch.Price = &price
	}
	set(3, &patch.Emoji)
	set(4, &patch.Category)

	p, err := b.core.EditProduct(actor, name, patch)
	if err != nil {
		reply(b.productMessage(err, name))
		return
	}
	reply("✅ แก้ไขสินค้า " + p.Emoji + " " + p.Name + " เรียบร้อยแล้ว")
}
