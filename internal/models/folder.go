package models

import "time"

type Folder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Bucket      string    `json:"bucket,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
