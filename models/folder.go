package models

import "time"

// Folder groups notes in list views. Folder membership is metadata only and
// is never encrypted.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
