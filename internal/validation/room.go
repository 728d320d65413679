package validation

// RoomInput is the payload for room create and partial update.
type RoomInput struct {
	Name      *string `json:"sala_nome" validate:"omitempty,min=2,max=255"`
	Available *bool   `json:"disponivel"`
}

var roomMessages = map[string]string{
	"sala_nome.min": "O campo sala_nome deve ter entre 2 a 255 caracteres.",
	"sala_nome.max": "O campo sala_nome deve ter entre 2 a 255 caracteres.",
}

// ValidateRoom checks the payload; when partial is false every field is
// required.
func ValidateRoom(in RoomInput, partial bool) error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		fields = structErrors(err, roomMessages)
	}
	if !partial {
		if in.Name == nil {
			fields["sala_nome"] = requiredMsg("sala_nome")
		}
		if in.Available == nil {
			fields["disponivel"] = requiredMsg("disponivel")
		}
	}
	return asError(fields)
}
