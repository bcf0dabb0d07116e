package cart

import (
	"bytes"
	"fmt"
	"strconv"
)

// keySeparator joins the item name and split index in the textual encoding of
// a LineKey. The ASCII unit separator cannot appear in a menu item name typed
// through the admin forms, so the encoding cannot collide.
const keySeparator = "\x1f"

// LineKey identifies the expanded line that addon attachments hang off.
// PerUnit keys carry the split index of one physical unit; whole-line keys
// address an unsplit line.
type LineKey struct {
	ItemName   string
	SplitIndex int
	PerUnit    bool
}

// UnitKey builds the key for one split unit of an item.
func UnitKey(itemName string, splitIndex int) LineKey {
	return LineKey{ItemName: itemName, SplitIndex: splitIndex, PerUnit: true}
}

// WholeLineKey builds the key for an unsplit line.
func WholeLineKey(itemName string) LineKey {
	return LineKey{ItemName: itemName}
}

// MarshalText encodes the key for use as a JSON map key.
func (k LineKey) MarshalText() ([]byte, error) {
	if !k.PerUnit {
		return []byte(k.ItemName), nil
	}
	return []byte(k.ItemName + keySeparator + strconv.Itoa(k.SplitIndex)), nil
}

// UnmarshalText decodes the textual form produced by MarshalText.
func (k *LineKey) UnmarshalText(text []byte) error {
	idx := bytes.LastIndex(text, []byte(keySeparator))
	if idx < 0 {
		*k = LineKey{ItemName: string(text)}
		return nil
	}
	splitIndex, err := strconv.Atoi(string(text[idx+len(keySeparator):]))
	if err != nil {
		return fmt.Errorf("decoding line key %q: %w", text, err)
	}
	*k = LineKey{ItemName: string(text[:idx]), SplitIndex: splitIndex, PerUnit: true}
	return nil
}

// String renders a human-readable form for logs.
func (k LineKey) String() string {
	if !k.PerUnit {
		return k.ItemName
	}
	return fmt.Sprintf("%s#%d", k.ItemName, k.SplitIndex)
}

// ExpandedLine is a derived display/pricing unit. It is never persisted;
// every rendering pass re-derives it from the cart lines.
type ExpandedLine struct {
	Key            LineKey
	ItemName       string
	UnitPriceCents int64
	Options        []string
	Incrementable  bool
	Quantity       int
	SplitIndex     int
}

// Expand derives the display units for a cart line. A line splits into one
// unit per quantity when the item is incrementable, or when it carries
// selectable options at quantity above one. Anything else stays a single
// line holding the full quantity. The result is deterministic for a fixed
// input, so addon selections keyed off the split index survive re-renders.
func Expand(line Line) []ExpandedLine {
	split := line.Incrementable || (line.Quantity > 1 && len(line.Options) > 0)
	if !split {
		return []ExpandedLine{{
			Key:            WholeLineKey(line.ItemName),
			ItemName:       line.ItemName,
			UnitPriceCents: line.UnitPriceCents,
			Options:        line.Options,
			Incrementable:  line.Incrementable,
			Quantity:       line.Quantity,
		}}
	}

	units := make([]ExpandedLine, 0, line.Quantity)
	for i := 0; i < line.Quantity; i++ {
		units = append(units, ExpandedLine{
			Key:            UnitKey(line.ItemName, i),
			ItemName:       line.ItemName,
			UnitPriceCents: line.UnitPriceCents,
			Options:        line.Options,
			Incrementable:  line.Incrementable,
			Quantity:       1,
			SplitIndex:     i,
		})
	}
	return units
}

// ExpandAll flattens every cart line into its expanded units, in line order.
func ExpandAll(lines []Line) []ExpandedLine {
	expanded := make([]ExpandedLine, 0, len(lines))
	for _, line := range lines {
		expanded = append(expanded, Expand(line)...)
	}
	return expanded
}
