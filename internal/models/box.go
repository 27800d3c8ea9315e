package models

import "time"

// Box is a scanned carton attributed to a pallet. Each box holds exactly one
// container id drawn from the pool for as long as it lives.
type Box struct {
	ID               int64     `json:"id" db:"id"`
	ContainerID      string    `json:"container_id" db:"container_id"`
	PalletID         int64     `json:"pallet_id" db:"pallet_id"`
	ImageFilename    string    `json:"image_filename" db:"image_filename"`
	OCRConfidence    *int      `json:"ocr_confidence" db:"ocr_confidence"`
	PurchaseOrder    string    `json:"purchase_order" db:"purchase_order"`
	Style            string    `json:"style" db:"style"`
	ItemDescription  string    `json:"item_description" db:"item_description"`
	Color            string    `json:"color" db:"color"`
	SKUNumber        string    `json:"sku_number" db:"sku_number"`
	Quantity         string    `json:"quantity" db:"quantity"`
	NetWeightKg      string    `json:"net_weight_kg" db:"net_weight_kg"`
	GrossWeightKg    string    `json:"gross_weight_kg" db:"gross_weight_kg"`
	Measurement      string    `json:"measurement" db:"measurement"`
	ConsignedTo      string    `json:"consigned_to" db:"consigned_to"`
	DeliverTo        string    `json:"deliver_to" db:"deliver_to"`
	DeliverToAddress string    `json:"deliver_to_address" db:"deliver_to_address"`
	CountryOfOrigin  string    `json:"country_of_origin" db:"country_of_origin"`
	CartonNo         string    `json:"carton_no" db:"carton_no"`
	AppointmentOrder string    `json:"appointment_order" db:"appointment_order"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Combination returns the box's identity triple.
func (b *Box) Combination() Combination {
	return Combination{
		PurchaseOrder: b.PurchaseOrder,
		Color:         b.Color,
		SKUNumber:     b.SKUNumber,
	}
}

// Label is the normalized payload produced by the OCR/parsing collaborator.
// Fields arrive as free-text strings; identity checks re-trim and fold case
// here rather than trusting upstream normalization.
type Label struct {
	ImageFilename    string `json:"image_filename"`
	OCRConfidence    *int   `json:"ocr_confidence"`
	PurchaseOrder    string `json:"purchase_order"`
	Style            string `json:"style"`
	ItemDescription  string `json:"item_description"`
	Color            string `json:"color"`
	SKUNumber        string `json:"sku_number"`
	Quantity         string `json:"quantity"`
	NetWeightKg      string `json:"net_weight_kg"`
	GrossWeightKg    string `json:"gross_weight_kg"`
	Measurement      string `json:"measurement"`
	ConsignedTo      string `json:"consigned_to"`
	DeliverTo        string `json:"deliver_to"`
	DeliverToAddress string `json:"deliver_to_address"`
	CountryOfOrigin  string `json:"country_of_origin"`
	CartonNo         string `json:"carton_no"`
}

// Combination returns the label's identity triple.
func (l *Label) Combination() Combination {
	return Combination{
		PurchaseOrder: l.PurchaseOrder,
		Color:         l.Color,
		SKUNumber:     l.SKUNumber,
	}
}
