package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cotafrete/internal/usecase"
	"cotafrete/pkg"

	"github.com/gin-gonic/gin"
)

// mapError translates use-case failures into the HTTP error body. Provider
// failures keep dedicated codes so clients can tell them apart.
func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", usecase.ErrPaymentGatewayCustomerNotFound.Message, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", usecase.ErrPaymentGatewayInvalidUsers.Message, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", usecase.ErrPaymentGatewayUnauthorized.Message, http.StatusUnprocessableEntity)
	}

	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
	switch ue.Kind {
	case usecase.KindUnauthenticated:
		return pkg.NewDomainErrorSimple(string(ue.Kind), ue.Message, http.StatusUnauthorized)
	case usecase.KindInvalidInput:
		return pkg.NewDomainErrorSimple(string(ue.Kind), ue.Message, http.StatusBadRequest)
	case usecase.KindForbidden:
		return pkg.NewDomainErrorSimple(string(ue.Kind), ue.Message, http.StatusForbidden)
	case usecase.KindNotFound:
		return pkg.NewDomainErrorSimple(string(ue.Kind), ue.Message, http.StatusNotFound)
	case usecase.KindConflict:
		return pkg.NewDomainErrorSimple(string(ue.Kind), ue.Message, http.StatusConflict)
	case usecase.KindInvalidState:
		return pkg.NewDomainErrorSimple(string(ue.Kind), ue.Message, http.StatusUnprocessableEntity)
	case usecase.KindDependencyTimeout:
		return pkg.NewRetryableError(string(ue.Kind), ue.Message, ue.Err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func respondError(c *gin.Context, err error) {
	appErr := mapError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func invalidRequest(c *gin.Context, message string) {
	appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", message, http.StatusBadRequest)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// queryInt reads a positive integer query parameter; anything else is 0.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
