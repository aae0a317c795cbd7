package shop

import "github.com/shopbot-th/discord-shop-bot/internal/catalog"

// Op identifies one canonical shop operation, independent of the surface
// (prefix message or slash command) it was invoked from.
type Op int

const (
	OpUnknown Op = iota
	OpOpenShop
	OpListProducts
	OpAddProduct
	OpRemoveProduct
	OpEditProduct
	OpHistory
	OpHelp
)

type binding struct {
	op       Op
	category catalog.Category
}

// Command names and their localized aliases. The category shortcut commands
// open the shop pre-filtered.
var bindings = map[string]binding{
	"shop":          {op: OpOpenShop},
	"ร้าน":          {op: OpOpenShop},
	"products":      {op: OpListProducts},
	"สินค้าทั้งหมด": {op: OpListProducts},
	"add":           {op: OpAddProduct},
	"เพิ่มสินค้า":   {op: OpAddProduct},
	"remove":        {op: OpRemoveProduct},
	"ลบสินค้า":      {op: OpRemoveProduct},
	"edit":          {op: OpEditProduct},
	"แก้ไขสินค้า":   {op: OpEditProduct},
	"history":       {op: OpHistory},
	"ประวัติ":       {op: OpHistory},
	"help":          {op: OpHelp},
	"ช่วยเหลือ":     {op: OpHelp},

	"money":   {op: OpOpenShop, category: catalog.CategoryMoney},
	"เงิน":    {op: OpOpenShop, category: catalog.CategoryMoney},
	"weapon":  {op: OpOpenShop, category: catalog.CategoryWeapon},
	"อาวุธ":   {op: OpOpenShop, category: catalog.CategoryWeapon},
	"item":    {op: OpOpenShop, category: catalog.CategoryItem},
	"ไอเทม":   {op: OpOpenShop, category: catalog.CategoryItem},
	"car":     {op: OpOpenShop, category: catalog.CategoryCar},
	"รถ":      {op: OpOpenShop, category: catalog.CategoryCar},
	"fashion": {op: OpOpenShop, category: catalog.CategoryFashion},
	"แฟชั่น":  {op: OpOpenShop, category: catalog.CategoryFashion},
	"rental":  {op: OpOpenShop, category: catalog.CategoryRental},
	"เช่ารถ":  {op: OpOpenShop, category: catalog.CategoryRental},
}

// Resolve maps a command name or localized alias to its canonical operation
// and, for the shortcut commands, an implied category filter. ok is false
// for names outside the closed set.
func Resolve(name string) (op Op, category catalog.Category, ok bool) {
	b, ok := bindings[name]
	if !ok {
		return OpUnknown, "", false
	}
	return b.op, b.category, true
}
