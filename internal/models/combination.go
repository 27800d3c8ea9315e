package models

import "strings"

// Combination is the (purchase order, color, SKU) triple that must stay
// uniform across every box on a pallet. Identity is case-insensitive and
// whitespace-trimmed.
type Combination struct {
	PurchaseOrder string `json:"purchase_order"`
	Color         string `json:"color"`
	SKUNumber     string `json:"sku_number"`
}

// Trimmed returns a copy with surrounding whitespace removed from each field.
func (c Combination) Trimmed() Combination {
	return Combination{
		PurchaseOrder: strings.TrimSpace(c.PurchaseOrder),
		Color:         strings.TrimSpace(c.Color),
		SKUNumber:     strings.TrimSpace(c.SKUNumber),
	}
}

// Equal reports whether two combinations are the same under trimmed,
// case-insensitive comparison.
func (c Combination) Equal(other Combination) bool {
	return foldEq(c.PurchaseOrder, other.PurchaseOrder) &&
		foldEq(c.Color, other.Color) &&
		foldEq(c.SKUNumber, other.SKUNumber)
}

// Key returns a stable normalized form, usable as a cache key component.
func (c Combination) Key() string {
	return strings.ToLower(strings.TrimSpace(c.PurchaseOrder)) + "|" +
		strings.ToLower(strings.TrimSpace(c.Color)) + "|" +
		strings.ToLower(strings.TrimSpace(c.SKUNumber))
}

func foldEq(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
