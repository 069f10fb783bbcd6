package models

import "time"

// Template is static reference data for a letter type. The workflow only
// reads it; lifecycle is owned by whoever seeds the templates table.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FileRef     string    `json:"fileRef,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
