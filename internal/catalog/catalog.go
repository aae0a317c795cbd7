package catalog

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Category classifies a product into one of the fixed shop sections.
type Category string

const (
	CategoryMoney   Category = "money"
	CategoryWeapon  Category = "weapon"
	CategoryItem    Category = "item"
	CategoryCar     Category = "car"
	CategoryFashion Category = "fashion"
	CategoryRental  Category = "rental"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryMoney,
	CategoryWeapon,
	CategoryItem,
	CategoryCar,
	CategoryFashion,
	CategoryRental,
}

var labels = map[Category]string{
	CategoryMoney:   "เงิน",
	CategoryWeapon:  "อาวุธ",
	CategoryItem:    "ไอเทม",
	CategoryCar:     "รถ",
	CategoryFashion: "แฟชั่น",
	CategoryRental:  "เช่ารถ",
}

// UnspecifiedLabel is shown for legacy products whose stored category is not
// part of the closed set.
const UnspecifiedLabel = "ไม่มีหมวด"

// Label returns the Thai display label for a category.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return UnspecifiedLabel
}

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// ParseCategory maps a canonical token or its Thai label to a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if c.Valid() {
		return c, true
	}
	for cat, label := range labels {
		if s == label {
			return cat, true
		}
	}
	return "", false
}

// Product is a single purchasable catalog entry. Name is the unique,
// case-sensitive key. Category is kept as the raw stored string so legacy
// free-text values survive a read; writes validate it against Category.
type Product struct {
	Name     string
	Price    int
	Emoji    string
	Category string

	// extra carries unknown fields from legacy catalog documents so a
	// load/save round trip does not drop them.
	extra map[string]json.RawMessage
}

// CategoryLabel returns the Thai label of the product's category, or the
// unspecified bucket for legacy values outside the closed set.
func (p Product) CategoryLabel() string {
	if c, ok := ParseCategory(p.Category); ok {
		return c.Label()
	}
	return UnspecifiedLabel
}

// MarshalJSON emits the known fields first in a fixed order, then any legacy
// extras in sorted key order.
func (p Product) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return nil
	}
	if err := writeField("name", p.Name); err != nil {
		return nil, err
	}
	if err := writeField("price", p.Price); err != nil {
		return nil, err
	}
	if err := writeField("emoji", p.Emoji); err != nil {
		return nil, err
	}
	if err := writeField("category", p.Category); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(p.extra))
	for k := range p.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writeField(k, p.extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON fills the known fields and keeps everything else aside so it
// can be written back verbatim.
func (p *Product) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	take := func(key string, dst any) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		delete(fields, key)
		return json.Unmarshal(raw, dst)
	}
	if err := take("name", &p.Name); err != nil {
		return err
	}
	if err := take("price", &p.Price); err != nil {
		return err
	}
	if err := take("emoji", &p.Emoji); err != nil {
		return err
	}
	if err := take("category", &p.Category); err != nil {
		return err
	}
	p.extra = nil
	if len(fields) > 0 {
		p.extra = fields
	}
	return nil
}
