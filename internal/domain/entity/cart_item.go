package entity

import "time"

// CartItem une usuario e item con una cantidad >= 1.
// A lo sumo uno por (UserID, ItemID); lo garantiza la restricción única del store.
// ItemID queda nil si el item fue borrado después de agregarse.
type CartItem struct {
	ID        string
	UserID    string
	ItemID    *string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
