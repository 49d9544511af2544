package room

import "time"

// Session describes a single player's game session
type Session struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Game      string    `json:"game"`
	CreatedAt time.Time `json:"createdAt"`
}
