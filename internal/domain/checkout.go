package domain

type CheckoutStatus string

const (
	CheckoutStatusCheckedOut CheckoutStatus = "retirada"
	CheckoutStatusLate       CheckoutStatus = "atrasada"
	CheckoutStatusReturned   CheckoutStatus = "devolvida"
)

// Open reports whether the checkout still holds the key. A late checkout
// is as open as a regular one; only a return closes it.
func (s CheckoutStatus) Open() bool {
	return s == CheckoutStatusCheckedOut || s == CheckoutStatusLate
}

// Checkout records the physical taking-out of a key, optionally tied to a
// reservation. ReturnTime is set exactly when the status is devolvida.
type Checkout struct {
	ID                 int32          `json:"retirada_id"`
	KeyID              int32          `json:"chave_id"`
	ResponsibleID      int32          `json:"responsavel_id"`
	ReservationID      *int32         `json:"reserva_id"`
	Date               string         `json:"data_retirada"`
	Time               string         `json:"hora_retirada"`
	ExpectedReturnTime string         `json:"hora_prevista_devolucao"`
	ReturnTime         *string        `json:"hora_devolucao"`
	Status             CheckoutStatus `json:"status"`
}

// CheckoutPatch carries the only two fields a checkout update may touch.
type CheckoutPatch struct {
	Status     *CheckoutStatus
	ReturnTime *string
}

// MergeCheckout applies a patch over an existing checkout. Every other
// field stays as stored, and the return time is cleared whenever the
// effective status is not devolvida.
func MergeCheckout(existing Checkout, patch CheckoutPatch) Checkout {
	merged := existing
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.ReturnTime != nil {
		merged.ReturnTime = patch.ReturnTime
	}
	if merged.Status != CheckoutStatusReturned {
		merged.ReturnTime = nil
	}
	return merged
}
