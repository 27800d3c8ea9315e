package models

// PalletAvailability is the advisor's verdict for one pallet.
type PalletAvailability struct {
	PalletID          int64  `json:"pallet_id"`
	Code              string `json:"code"`
	MasterContainerID string `json:"master_container_id"`
	Capacity          int    `json:"capacity"`
	CurrentCount      int    `json:"current_count"`
	CanAccept         bool   `json:"can_accept"`
	Reason            string `json:"reason"`
}

// AvailabilityReport is the full advisor response for one requested
// combination, pallets in ascending id order.
type AvailabilityReport struct {
	RequestedCombination Combination          `json:"requested_combination"`
	TotalPallets         int                  `json:"total_pallets"`
	ValidPalletCount     int                  `json:"valid_pallet_count"`
	Pallets              []PalletAvailability `json:"pallets"`
}

// BoxDeleteResult reports a single-box deletion and whether the container id
// made it back to the pool.
type BoxDeleteResult struct {
	BoxID       int64  `json:"box_id"`
	ContainerID string `json:"container_id"`
	Released    bool   `json:"released"`
}

// PalletDeleteResult reports a bulk deletion. Release misses land in NotFreed
// as data; they never abort the deletion.
type PalletDeleteResult struct {
	PalletID     int64    `json:"pallet_id"`
	DeletedCount int64    `json:"deleted_count"`
	Freed        []string `json:"freed"`
	NotFreed     []string `json:"not_freed,omitempty"`
}

// AppointmentConflict flags a purchase order whose boxes disagree on their
// appointment order. This should never happen; the audit job reports it.
type AppointmentConflict struct {
	PurchaseOrder string   `json:"purchase_order"`
	Orders        []string `json:"orders"`
}
