package cart

import (
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/enums"
)

// Line is one cart row: a catalog item reference plus a quantity.
// Display fields are captured at add time so the snapshot renders without a
// catalog round trip.
type Line struct {
	ItemName       string                `json:"item_name"`
	Description    string                `json:"description,omitempty"`
	UnitPriceCents int64                 `json:"unit_price_cents"`
	Category       enums.ProductCategory `json:"category"`
	Subcategory    *string               `json:"subcategory,omitempty"`
	Options        []string              `json:"options,omitempty"`
	Incrementable  bool                  `json:"incrementable"`
	Quantity       int                   `json:"quantity"`
}

// Snapshot is the full per-session cart state persisted between requests.
type Snapshot struct {
	Lines  []Line `json:"lines"`
	Addons Ledger `json:"addons"`
}

// NewSnapshot returns an empty cart.
func NewSnapshot() *Snapshot {
	return &Snapshot{Addons: Ledger{}}
}

func lineFromProduct(p *models.Product) Line {
	return Line{
		ItemName:       p.Name,
		Description:    p.Description,
		UnitPriceCents: p.PriceCents,
		Category:       p.Category,
		Subcategory:    p.Subcategory,
		Options:        append([]string(nil), p.Options...),
		Incrementable:  p.Incrementable,
	}
}

// AddItem merges one unit into the existing line for the item name, or appends
// a new line with quantity 1. At most one line ever exists per item name.
func (s *Snapshot) AddItem(line Line) {
	for i := range s.Lines {
		if s.Lines[i].ItemName == line.ItemName {
			s.Lines[i].Quantity++
			return
		}
	}
	line.Quantity = 1
	s.Lines = append(s.Lines, line)
}

// RemoveItem takes one unit off the named line. Absent lines are a no-op.
// A line reaching zero is deleted together with its addon keys, and a cart
// transitioning to empty drops the whole ledger.
func (s *Snapshot) RemoveItem(itemName string) {
	for i := range s.Lines {
		if s.Lines[i].ItemName != itemName {
			continue
		}
		if s.Lines[i].Quantity > 1 {
			s.Lines[i].Quantity--
			return
		}
		s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
		s.Addons.RemoveItem(itemName)
		if len(s.Lines) == 0 {
			s.Addons.Reset()
		}
		return
	}
}

// Quantity reports the units held for the item name, zero when absent.
func (s *Snapshot) Quantity(itemName string) int {
	for i := range s.Lines {
		if s.Lines[i].ItemName == itemName {
			return s.Lines[i].Quantity
		}
	}
	return 0
}

// Clear empties the cart and resets the addon ledger.
func (s *Snapshot) Clear() {
	s.Lines = nil
	s.Addons.Reset()
}

// IsEmpty reports whether the cart holds no lines.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

// ItemCount sums quantities across all lines.
func (s *Snapshot) ItemCount() int {
	total := 0
	for i := range s.Lines {
		total += s.Lines[i].Quantity
	}
	return total
}

func (s *Snapshot) line(itemName string) *Line {
	for i := range s.Lines {
		if s.Lines[i].ItemName == itemName {
			return &s.Lines[i]
		}
	}
	return nil
}
