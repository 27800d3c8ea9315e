package models

// ContainerPoolEntry is one reusable physical container identifier. Entries
// are created in bulk at seed time and never deleted; only the assigned flag
// toggles as boxes consume and release them.
type ContainerPoolEntry struct {
	ID          int64  `json:"id" db:"id"`
	ContainerID string `json:"container_id" db:"container_id"`
	Assigned    bool   `json:"assigned" db:"assigned"`
}
