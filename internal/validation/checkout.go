package validation

import (
	"key-control-backend/internal/domain"
)

// CheckoutInput is the payload for checkout create and partial update.
type CheckoutInput struct {
	KeyID              *int32  `json:"chave_id" validate:"omitempty,gt=0"`
	ResponsibleID      *int32  `json:"responsavel_id" validate:"omitempty,gt=0"`
	ReservationID      *int32  `json:"reserva_id" validate:"omitempty,gte=0"`
	Date               *string `json:"data_retirada" validate:"omitempty,isodate"`
	Time               *string `json:"hora_retirada" validate:"omitempty,clock"`
	ExpectedReturnTime *string `json:"hora_prevista_devolucao" validate:"omitempty,clock"`
	ReturnTime         *string `json:"hora_devolucao" validate:"omitempty,clock"`
	Status             *string `json:"status" validate:"omitempty,oneof=retirada atrasada devolvida"`
}

// Patch converts the payload into the patch a checkout update may apply.
// Everything besides status and return time is immutable after create.
func (in CheckoutInput) Patch() domain.CheckoutPatch {
	patch := domain.CheckoutPatch{ReturnTime: in.ReturnTime}
	if in.Status != nil {
		status := domain.CheckoutStatus(*in.Status)
		patch.Status = &status
	}
	return patch
}

var checkoutMessages = map[string]string{
	"chave_id.gt":                   "O campo chave_id deve ser valido (maior que 0) e corresponder a uma chave existente.",
	"responsavel_id.gt":             "O campo responsavel_id deve ser valido (maior que 0) e corresponder a um responsavel existente.",
	"reserva_id.gte":                "O campo reserva_id deve ser valido e corresponder a uma reserva existente.",
	"data_retirada.isodate":         "Formato inválido. Use YYYY-MM-DD.",
	"hora_retirada.clock":           "Formato inválido. Use HH:MM.",
	"hora_prevista_devolucao.clock": "Formato inválido. Use HH:MM.",
	"hora_devolucao.clock":          "Formato inválido. Use HH:MM.",
	"status.oneof":                  "O campo status aceita apenas uma dessas opções: retirada, atrasada, devolvida.",
}

// ValidateCheckoutCreate checks the create payload: all fields required
// except the reservation link, status forced to retirada, no return time.
func ValidateCheckoutCreate(in CheckoutInput) error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		fields = structErrors(err, checkoutMessages)
	}

	if in.KeyID == nil {
		fields["chave_id"] = requiredMsg("chave_id")
	}
	if in.ResponsibleID == nil {
		fields["responsavel_id"] = requiredMsg("responsavel_id")
	}
	if in.Date == nil {
		fields["data_retirada"] = requiredMsg("data_retirada")
	}
	if in.Time == nil {
		fields["hora_retirada"] = requiredMsg("hora_retirada")
	}
	if in.ExpectedReturnTime == nil {
		fields["hora_prevista_devolucao"] = requiredMsg("hora_prevista_devolucao")
	}
	if in.Status == nil {
		fields["status"] = requiredMsg("status")
	} else if *in.Status != string(domain.CheckoutStatusCheckedOut) {
		fields["status"] = "No POST, status deve ser 'retirada'."
	}
	if in.ReturnTime != nil {
		fields["hora_devolucao"] = "hora_devolucao não pode ser informada no POST."
	}

	if in.Time != nil && in.ExpectedReturnTime != nil && *in.ExpectedReturnTime <= *in.Time {
		fields["hora_prevista_devolucao"] = "hora_prevista_devolucao deve ser maior que hora_retirada."
	}

	return asError(fields)
}

// ValidateCheckoutUpdate checks an update payload against the existing
// checkout. Only status and hora_devolucao are mutable, and a return time
// exists exactly when the effective status is devolvida.
func ValidateCheckoutUpdate(in CheckoutInput, existing *domain.Checkout) error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		fields = structErrors(err, checkoutMessages)
	}

	status := existing.Status
	if in.Status != nil {
		status = domain.CheckoutStatus(*in.Status)
	}
	returnTime := existing.ReturnTime
	if in.ReturnTime != nil {
		returnTime = in.ReturnTime
	}

	if status == domain.CheckoutStatusReturned && returnTime == nil {
		fields["hora_devolucao"] = "hora_devolucao é obrigatória quando status é 'devolvida'."
	}
	if status != domain.CheckoutStatusReturned && returnTime != nil {
		fields["hora_devolucao"] = "hora_devolucao só deve existir quando status é 'devolvida'."
	}
	if returnTime != nil && *returnTime < existing.Time {
		fields["hora_devolucao"] = "hora_devolucao não pode ser anterior a hora_retirada."
	}

	return asError(fields)
}
