package models

import "time"

// Pallet is a fixed staging location. The set of pallets is seeded once at
// startup and never changes afterwards; only box membership mutates.
type Pallet struct {
	ID                int64     `json:"id" db:"id"`
	Code              string    `json:"code" db:"code"`
	MasterContainerID string    `json:"master_container_id" db:"master_container_id"`
	Capacity          int       `json:"capacity" db:"capacity"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// PalletGroup is the read view of a pallet together with its boxes. The
// combination is derived from the first box, never stored on the pallet row.
type PalletGroup struct {
	PalletID          int64        `json:"pallet_id"`
	Code              string       `json:"code"`
	MasterContainerID string       `json:"master_container_id"`
	Capacity          int          `json:"capacity"`
	BoxCount          int          `json:"box_count"`
	Combination       *Combination `json:"combination,omitempty"`
	Boxes             []*Box       `json:"boxes"`
}
