package models

import "time"

// Owned is the envelope shared by every record a principal creates.
// CreatedBy is set exactly once, at creation, and update payloads can
// never reach it: the input structs below simply have no such field.
type Owned struct {
	ID        string    `json:"id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
