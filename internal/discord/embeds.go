package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/shopbot-th/discord-shop-bot/internal/checkout"
	"github.com/shopbot-th/discord-shop-bot/internal/ledger"
	"github.com/shopbot-th/discord-shop-bot/internal/shop"
)

const (
	colorReceipt = 0x00ff00
	colorPayment = 0x4f0099
	colorHistory = 0xf1c40f
	colorListing = 0x3498db
	colorHelp    = 0x9b59b6

	// Discord rejects embeds with more than 25 fields.
	maxEmbedFields = 25
)

const timeLayout = "02/01/2006 15:04"

func receiptItems(items []ledger.Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s - %d฿ x %d = %d฿", it.Name, it.Price, it.Qty, it.Price*it.Qty))
	}
	return strings.Join(lines, "\n")
}

func receiptEmbed(r checkout.Receipt, actor shop.Actor) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🧾 ใบเสร็จรับเงิน",
		Description: fmt.Sprintf("**ลูกค้า:** %s\n**วันที่:** %s", actor.Mention, r.Timestamp.Format(timeLayout)),
		Color:       colorReceipt,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "รายการสินค้า", Value: receiptItems(r.Items)},
			{Name: "ยอดรวม", Value: fmt.Sprintf("💵 %d฿", r.Total)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "ขอบคุณที่ใช้บริการ! 🙏"},
	}
}

func paymentEmbed(r checkout.Receipt, actor shop.Actor) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "📲 กรุณาสแกน QR Code เพื่อชำระเงิน",
		Description: fmt.Sprintf("**ลูกค้า:** %s\n**ยอดชำระ:** 💵 %d฿\n**ธนาคาร:** %s", actor.Mention, r.Total, r.Payment.Bank),
		Color:       colorPayment,
		Footer:      &discordgo.MessageEmbedFooter{Text: "กรุณาโอนเงินและแคปหลักฐานส่งให้แอดมิน"},
	}
	if r.Payment.QRURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: r.Payment.QRURL}
	}
	return e
}

func historyEmbed(records []ledger.Record) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{Title: "📊 ประวัติการซื้อล่าสุด", Color: colorHistory}
	for i, rec := range records {
		if len(e.Fields) == maxEmbedFields {
			break
		}
		when := rec.Timestamp
		if t, err := time.Parse(time.RFC3339, rec.Timestamp); err == nil {
			when = t.Format(timeLayout)
		}
		var items strings.Builder
		for _, it := range rec.Items {
			fmt.Fprintf(&items, "• %s x%d (%d฿)\n", it.Name, it.Qty, it.Price)
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. ผู้ซื้อ: %s - %s", i+1, rec.User, when),
			Value: fmt.Sprintf("%s**ยอดรวม:** %d฿", items.String(), rec.Total),
		})
	}
	return e
}

// listingEmbeds renders a grouped product listing, splitting into
// continuation embeds at the field limit like the original bot.
func listingEmbeds(listing shop.Listing) []*discordgo.MessageEmbed {
	var embeds []*discordgo.MessageEmbed
	current := &discordgo.MessageEmbed{Title: "🛒 รายการสินค้าทั้งหมด", Color: colorListing}
	if listing.Category != "" {
		current.Description = "หมวด: " + listing.Category.Label()
	}

	for _, group := range listing.Groups {
		if len(current.Fields)+1+len(group.Products) > maxEmbedFields {
			embeds = append(embeds, current)
			current = &discordgo.MessageEmbed{Title: "🛒 รายการสินค้าทั้งหมด (ต่อ)", Color: colorListing}
		}
		current.Fields = append(current.Fields, &discordgo.MessageEmbedField{
			Name:  "**" + strings.ToUpper(group.Label) + "**",
			Value: "────────────────",
		})
		for _, p := range group.Products {
			current.Fields = append(current.Fields, &discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("%s %s", p.Emoji, p.Name),
				Value:  fmt.Sprintf("ราคา: %d฿", p.Price),
				Inline: true,
			})
		}
	}
	return append(embeds, current)
}

// helpEmbed documents both command surfaces; sigil is the prefix for the
// surface the help was requested from.
func helpEmbed(sigil string, other string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🛠️ คำสั่งทั้งหมด",
		Color: colorHelp,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📌 คำสั่งทั่วไป",
				Value: fmt.Sprintf(
					"**%[1]sร้าน [หมวด]** - เปิดร้านค้าเพื่อซื้อสินค้า (หมวดเป็นตัวเลือก)\n"+
						"**%[1]sสินค้าทั้งหมด [หมวด]** - แสดงรายการสินค้าทั้งหมด (หมวดเป็นตัวเลือก)\n"+
						"**%[1]sช่วยเหลือ** - แสดงข้อมูลช่วยเหลือ", sigil),
			},
			{
				Name: "🏷️ คำสั่งลัดหมวดหมู่",
				Value: fmt.Sprintf(
					"**%[1]sเงิน** หรือ **%[1]smoney** - เปิดร้านค้าหมวดเงิน\n"+
						"**%[1]sอาวุธ** หรือ **%[1]sweapon** - เปิดร้านค้าหมวดอาวุธ\n"+
						"**%[1]sไอเทม** หรือ **%[1]sitem** - เปิดร้านค้าหมวดไอเทม\n"+
						"**%[1]sรถ** หรือ **%[1]scar** - เปิดร้านค้าหมวดรถ\n"+
						"**%[1]sแฟชั่น** หรือ **%[1]sfashion** - เปิดร้านค้าหมวดแฟชั่น\n"+
						"**%[1]sเช่ารถ** หรือ **%[1]srental** - เปิดร้านค้าหมวดเช่ารถ", sigil),
			},
			{
				Name: "👑 คำสั่งสำหรับแอดมิน",
				Value: fmt.Sprintf(
					"**%[1]sเพิ่มสินค้า [ชื่อ] [ราคา] [อีโมจิ] [หมวด]** - เพิ่มสินค้าใหม่ (หมวดเป็นตัวเลือก ค่าเริ่มต้นคือ 'item')\n"+
						"**%[1]sลบสินค้า [ชื่อ]** - ลบสินค้า\n"+
						"**%[1]sแก้ไขสินค้า [ชื่อ] [ชื่อใหม่] [ราคาใหม่] [อีโมจิใหม่] [หมวดใหม่]** - แก้ไขสินค้า\n"+
						"**%[1]sประวัติ [จำนวน]** - ดูประวัติการซื้อล่าสุด (ค่าเริ่มต้นคือ 5)", sigil),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("คุณยังสามารถใช้คำสั่ง %s ได้อีกด้วย เช่น %[1]sร้าน, %[1]sเพิ่มสินค้า เป็นต้น", other),
		},
	}
}
