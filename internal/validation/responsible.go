package validation

// ResponsibleInput is the payload for responsible create and partial
// update.
type ResponsibleInput struct {
	Name      *string `json:"responsavel_nome" validate:"omitempty,min=2,max=255"`
	CPF       *string `json:"responsavel_cpf" validate:"omitempty,min=11,max=14"`
	SIAPE     *string `json:"responsavel_siap" validate:"omitempty,min=1,max=20"`
	BirthDate *string `json:"responsavel_data_nascimento" validate:"omitempty,isodate"`
	Active    *bool   `json:"ativo"`
}

var responsibleMessages = map[string]string{
	"responsavel_nome.min":                "O campo responsavel_nome deve ter entre 2 a 255 caracteres.",
	"responsavel_nome.max":                "O campo responsavel_nome deve ter entre 2 a 255 caracteres.",
	"responsavel_cpf.min":                 "O campo responsavel_cpf deve ter entre 11 a 14 caracteres.",
	"responsavel_cpf.max":                 "O campo responsavel_cpf deve ter entre 11 a 14 caracteres.",
	"responsavel_siap.min":                "O campo responsavel_siap é inválido.",
	"responsavel_siap.max":                "O campo responsavel_siap é inválido.",
	"responsavel_data_nascimento.isodate": "Formato inválido. Use YYYY-MM-DD.",
}

// ValidateResponsible checks the payload; when partial is false every
// field but the birth date is required.
func ValidateResponsible(in ResponsibleInput, partial bool) error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		fields = structErrors(err, responsibleMessages)
	}
	if !partial {
		if in.Name == nil {
			fields["responsavel_nome"] = requiredMsg("responsavel_nome")
		}
		if in.CPF == nil {
			fields["responsavel_cpf"] = requiredMsg("responsavel_cpf")
		}
		if in.SIAPE == nil {
			fields["responsavel_siap"] = requiredMsg("responsavel_siap")
		}
		if in.Active == nil {
			fields["ativo"] = requiredMsg("ativo")
		}
	}
	return asError(fields)
}
