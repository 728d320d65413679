package domain

// Room is a physical space whose keys are issued through checkouts.
// Disponivel is false while any checkout on one of its keys is open.
type Room struct {
	ID        int32  `json:"sala_id"`
	Name      string `json:"sala_nome"`
	Available bool   `json:"disponivel"`
}
