package domain

// Responsible is a person authorized to reserve rooms and take out keys.
// Only inactive responsibles may be deleted.
type Responsible struct {
	ID        int32   `json:"responsavel_id"`
	Name      string  `json:"responsavel_nome"`
	CPF       string  `json:"responsavel_cpf"`
	SIAPE     string  `json:"responsavel_siap"`
	BirthDate *string `json:"responsavel_data_nascimento"`
	Active    bool    `json:"ativo"`
}
