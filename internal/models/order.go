package models

import "time"

// Order - заявка, принятая через диалог.
// Task содержит описание задачи и аннотацию бюджета.
type Order struct {
	ID              int64     `json:"id"`
	RequesterID     int64     `json:"user_id"`
	RequesterHandle string    `json:"username"`
	Name            string    `json:"name"`
	Task            string    `json:"task"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
