package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	agreementDomain "rentflow-backend/internal/domain/agreement"
	agreementUsecase "rentflow-backend/internal/usecase/agreement"
)

type AgreementHandler struct{ uc *agreementUsecase.Usecase }

func NewAgreementHandler(uc *agreementUsecase.Usecase) *AgreementHandler {
	return &AgreementHandler{uc: uc}
}

type signReq struct {
	Role string `json:"role" validate:"required,oneof=tenant landlord"`
}

// Sign records the calling party's signature on the agreement.
func (h *AgreementHandler) Sign(c echo.Context) error {
	agreementID := c.Param("agreement_id")
	if !reHex32.MatchString(agreementID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid agreement_id"})
	}
	caller := actorID(c)
	if !reHex32.MatchString(caller) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}

	var req signReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	// closed role set; validated above so this cannot fail
	role, err := agreementDomain.ParseRole(req.Role)
	if err != nil {
		return writeError(c, err)
	}

	dto, err := h.uc.Sign(c.Request().Context(), agreementID, caller, role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) GetAgreement(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("agreement_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
