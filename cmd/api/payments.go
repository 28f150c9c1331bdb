package main

import (
	"errors"
	"net/http"
	"strings"

	"fooddash/internal/payments"
)

type initializePaymentPayload struct {
	Amount    int64          `json:"amount" validate:"gt=0"`
	Email     string         `json:"email" validate:"required"`
	Reference string         `json:"reference" validate:"required"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type initializePaymentResponse struct {
	Success          bool   `json:"success"`
	AccessCode       string `json:"access_code"`
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type verifyPaymentPayload struct {
	Reference string `json:"reference" validate:"required"`
}

func (app *application) preflightHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// initializePaymentHandler godoc
//
//	@Summary		Initialize a payment
//	@Description	Creates a Paystack transaction and returns the checkout handle. Amount is in the minor currency unit.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		initializePaymentPayload	true	"Payment details"
//	@Success		200		{object}	initializePaymentResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Security		ApiKeyAuth
//	@Router			/payments/initialize [post]
func (app *application) initializePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var payload initializePaymentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err, "Missing required parameters")
		return
	}
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Reference = strings.TrimSpace(payload.Reference)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err, "Missing required parameters")
		return
	}

	res, err := app.payments.InitiatePayment(r.Context(), payments.Paystack, payments.PaymentRequest{
		Amount:    payload.Amount,
		Email:     payload.Email,
		Reference: payload.Reference,
		Metadata:  payload.Metadata,
	})
	if err != nil {
		app.paymentError(w, r, err, "Failed to initialize payment")
		return
	}

	app.logger.Infow("payment initialized", "reference", res.Reference)

	writeJSON(w, http.StatusOK, initializePaymentResponse{
		Success:          true,
		AccessCode:       res.AccessCode,
		AuthorizationURL: res.AuthorizationURL,
		Reference:        res.Reference,
	})
}

// verifyPaymentHandler godoc
//
//	@Summary		Verify a payment
//	@Description	Looks up a Paystack transaction by reference. A failed or abandoned transaction still answers 200 with success=false.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		verifyPaymentPayload	true	"Payment reference"
//	@Success		200		{object}	payments.PaymentVerifyResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Security		ApiKeyAuth
//	@Router			/payments/verify [post]
func (app *application) verifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var payload verifyPaymentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err, "Payment reference is required")
		return
	}
	payload.Reference = strings.TrimSpace(payload.Reference)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err, "Payment reference is required")
		return
	}

	res, err := app.payments.VerifyPayment(r.Context(), payments.Paystack, payments.PaymentVerifyRequest{Reference: payload.Reference})
	if err != nil {
		app.paymentError(w, r, err, "Failed to verify payment")
		return
	}

	app.logger.Infow("payment verified", "reference", res.Reference, "status", res.Status)

	writeJSON(w, http.StatusOK, res)
}

// paymentError surfaces the gateway's own message where there is one.
func (app *application) paymentError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var gwErr *payments.GatewayError
	switch {
	case errors.Is(err, payments.ErrMissingSecretKey):
		app.internalServerError(w, r, err, "Paystack secret key not configured")
	case errors.As(err, &gwErr):
		app.internalServerError(w, r, err, gwErr.Message)
	default:
		app.internalServerError(w, r, err, fallback)
	}
}
