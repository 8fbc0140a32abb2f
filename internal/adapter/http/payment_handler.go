package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	paymentUsecase "rentflow-backend/internal/usecase/payment"
)

const (
	defaultPollAttempts   = 5
	defaultPollIntervalMS = 500
	minPollIntervalMS     = 100
)

type PaymentHandler struct {
	uc *paymentUsecase.Usecase

	// ceilings from config
	maxAttempts   int
	maxIntervalMS int
}

func NewPaymentHandler(uc *paymentUsecase.Usecase, maxAttempts, maxIntervalMS int) *PaymentHandler {
	return &PaymentHandler{uc: uc, maxAttempts: maxAttempts, maxIntervalMS: maxIntervalMS}
}

// RequestPayment creates (or returns) the payment obligation for an approved
// application. The signed-in tenant is identified by the Ax-Actor-Id header.
func (h *PaymentHandler) RequestPayment(c echo.Context) error {
	applicationID := c.Param("application_id")
	if !reHex32.MatchString(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id"})
	}
	caller := actorID(c)
	if !reHex32.MatchString(caller) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}

	dto, err := h.uc.RequestPayment(c.Request().Context(), applicationID, caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("payment_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// PollPaymentStatus is the bounded fallback wait for clients that cannot
// receive the push confirmation. Query bounds are clamped server-side.
func (h *PaymentHandler) PollPaymentStatus(c echo.Context) error {
	attempts := queryInt(c, "max_attempts", defaultPollAttempts)
	intervalMS := queryInt(c, "interval_ms", defaultPollIntervalMS)

	if attempts < 1 {
		attempts = 1
	} else if attempts > h.maxAttempts {
		attempts = h.maxAttempts
	}
	if intervalMS < minPollIntervalMS {
		intervalMS = minPollIntervalMS
	} else if intervalMS > h.maxIntervalMS {
		intervalMS = h.maxIntervalMS
	}

	res, err := h.uc.Poll(c.Request().Context(), c.Param("payment_id"), attempts, time.Duration(intervalMS)*time.Millisecond)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
