package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заявки на товар из листа ожидания
type RequestStatus string

const (
	RequestStatusPending         RequestStatus = "PENDING"
	RequestStatusApproved        RequestStatus = "APPROVED"
	RequestStatusRejected        RequestStatus = "REJECTED"
	RequestStatusOrderReady      RequestStatus = "ORDER_READY"
	RequestStatusPaymentSelected RequestStatus = "PAYMENT_SELECTED"
	RequestStatusShipped         RequestStatus = "SHIPPED"
	RequestStatusCancelled       RequestStatus = "CANCELLED"
)

// Статусы этапа оплаты (депозит и остаток проходят одни и те же этапы)
type PaymentStepStatus string

const (
	PaymentStepNotSent PaymentStepStatus = "NOT_SENT"
	PaymentStepSent    PaymentStepStatus = "SENT"
	PaymentStepPaid    PaymentStepStatus = "PAID"
	PaymentStepFailed  PaymentStepStatus = "FAILED"
)

// Способ оплаты остатка. Пустая строка - способ ещё не выбран.
type PaymentMethod string

const (
	PaymentMethodDirect  PaymentMethod = "DIRECT"
	PaymentMethodInvoice PaymentMethod = "INVOICE"
)

// WaitlistApplication - заявка на товар ограниченной серии.
// Единственный владелец записи - машина состояний оплаты,
// все изменения проходят через неё.
type WaitlistApplication struct {
	ID                   string
	DisplayNumber        string
	ApplicantContact     string
	RequestStatus        RequestStatus
	DepositStatus        PaymentStepStatus
	DepositAmount        decimal.Decimal
	DepositPaidAt        *time.Time
	RemainingStatus      PaymentStepStatus
	RemainingAmount      decimal.Decimal
	PaymentMethod        PaymentMethod
	PaymentOptionsSent   bool
	PaymentOptionsSentAt *time.Time
	PaymentDueDate       *time.Time
	TrackingCode         string
	ShippingCarrier      string
	Notes                string
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TotalAmount - полная стоимость заявки (депозит + остаток)
func (a *WaitlistApplication) TotalAmount() decimal.Decimal {
	return a.DepositAmount.Add(a.RemainingAmount)
}

// SubmitRequest - модель заявки, приходит извне при подаче
type SubmitRequest struct {
	ApplicantContact string  `json:"applicant_contact"`
	DepositAmount    float64 `json:"deposit_amount"`
	RemainingAmount  float64 `json:"remaining_amount"`
}
