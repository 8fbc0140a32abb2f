package http

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"rentflow-backend/internal/domain/fault"
	paymentDomain "rentflow-backend/internal/domain/payment"
	agreementUsecase "rentflow-backend/internal/usecase/agreement"
	paymentUsecase "rentflow-backend/internal/usecase/payment"
)

// WebhookHandler receives the gateway's push confirmations. This is the only
// way a payment leaves pending; client routes never touch the status column.
type WebhookHandler struct {
	payments   *paymentUsecase.Usecase
	agreements *agreementUsecase.Usecase
	token      string
}

func NewWebhookHandler(payments *paymentUsecase.Usecase, agreements *agreementUsecase.Usecase, token string) *WebhookHandler {
	return &WebhookHandler{payments: payments, agreements: agreements, token: token}
}

type confirmationReq struct {
	PaymentID     string `json:"payment_id"     validate:"required,hex32"`
	Status        string `json:"status"         validate:"required,oneof=paid failed"`
	TransactionID string `json:"transaction_id"`
}

// PaymentConfirmation is at-least-once safe end to end: Confirm is inert on
// redelivery and agreement generation is a conditional insert. A transient
// failure answers 503 so the gateway redelivers.
func (h *WebhookHandler) PaymentConfirmation(c echo.Context) error {
	got := c.Request().Header.Get("X-Gateway-Token")
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "bad gateway token"})
	}

	var req confirmationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.payments.Confirm(c.Request().Context(), paymentUsecase.Confirmation{
		PaymentID:     req.PaymentID,
		Status:        req.Status,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return writeError(c, err)
	}

	if dto.Status == string(paymentDomain.StatusPaid) {
		if _, err := h.agreements.Generate(c.Request().Context(), dto.PaymentID); err != nil {
			if fault.KindOf(err) == fault.KindTransient {
				return writeError(c, err)
			}
			// anything else here is a data problem the retry channel can't fix
			log.Printf("webhook: agreement generation for payment %s: %v", dto.PaymentID, err)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"payment_id": dto.PaymentID, "status": dto.Status})
}
