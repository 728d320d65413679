package validation

// KeyInput is the payload for key create and partial update.
type KeyInput struct {
	Name      *string `json:"chave_nome" validate:"omitempty,min=2,max=255"`
	RoomID    *int32  `json:"sala_id" validate:"omitempty,gt=0"`
	Available *bool   `json:"disponivel"`
}

var keyMessages = map[string]string{
	"chave_nome.min": "O campo chave_nome deve ter entre 2 a 255 caracteres.",
	"chave_nome.max": "O campo chave_nome deve ter entre 2 a 255 caracteres.",
	"sala_id.gt":     "O campo sala_id deve ser valido (maior que 0) e corresponder a uma sala existente.",
}

// ValidateKey checks the payload; when partial is false every field is
// required.
func ValidateKey(in KeyInput, partial bool) error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		fields = structErrors(err, keyMessages)
	}
	if !partial {
		if in.Name == nil {
			fields["chave_nome"] = requiredMsg("chave_nome")
		}
		if in.RoomID == nil {
			fields["sala_id"] = requiredMsg("sala_id")
		}
		if in.Available == nil {
			fields["disponivel"] = requiredMsg("disponivel")
		}
	}
	return asError(fields)
}
