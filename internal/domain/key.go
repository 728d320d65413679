package domain

// Key is a physical key tied to exactly one room. A key may only be
// deleted while it is available.
type Key struct {
	ID        int32  `json:"chave_id"`
	Name      string `json:"chave_nome"`
	RoomID    int32  `json:"sala_id"`
	Available bool   `json:"disponivel"`
}
