// Package ledger is the append-only purchase log. Records are written once
// and never updated or deleted; history queries re-read the file.
package ledger

// Item captures one purchased line with the price frozen at purchase time.
// A later catalog edit never changes what a past record says.
type Item struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int    `json:"price"`
}

// Record is one completed purchase. ID is a ULID stamped on append; legacy
// lines without one still parse.
type Record struct {
	ID        string `json:"id,omitempty"`
	User      string `json:"user"`
	Items     []Item `json:"items"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
}
