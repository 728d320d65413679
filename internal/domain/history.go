package domain

// CheckoutHistoryEntry is the joined projection returned by the history
// read model: one returned checkout with its key, room and responsible.
type CheckoutHistoryEntry struct {
	CheckoutID         int32   `json:"retirada_id"`
	Date               string  `json:"data_retirada"`
	Time               string  `json:"hora_retirada"`
	ExpectedReturnTime string  `json:"hora_prevista_devolucao"`
	ReturnTime         *string `json:"hora_devolucao"`
	Status             string  `json:"status"`
	RoomID             int32   `json:"sala_id"`
	RoomName           string  `json:"sala_nome"`
	KeyID              int32   `json:"chave_id"`
	KeyName            string  `json:"chave_nome"`
	ResponsibleID      int32   `json:"responsavel_id"`
	ResponsibleName    string  `json:"responsavel_nome"`
}

// HistoryFilter narrows the history listing. Zero values mean "no filter";
// ResponsibleName matches as a case-insensitive substring.
type HistoryFilter struct {
	RoomID          *int32
	ResponsibleID   *int32
	ResponsibleName string
}
