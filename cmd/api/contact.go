package main

import (
	"context"
	"net/http"
	"time"

	"playmart/internal/domain/support"
	"playmart/internal/mailer"
)

type ContactPayload struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required,max=5000"`
}

// contactHandler godoc
//
//	@Summary		Submit a contact-form message
//	@Description	Stores the message and notifies the shop inbox by email.
//	@Tags			support
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ContactPayload	true	"message"
//	@Success		201		{object}	support.ContactMessage
//	@Router			/contact [post]
func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	var payload ContactPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	message, err := app.store.Support.CreateMessage(ctx, &support.ContactMessage{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Body:    payload.Body,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// The notification is best effort. The customer already has the
	// stored message and its reference even if SMTP is down.
	status, err := app.mailer.Send(mailer.ContactNotificationTemplate,
		"Playmart Support", app.config.mail.shopInbox, message)
	if err != nil {
		app.logger.Errorw("failed to send contact notification",
			"reference", message.Reference, "error", err.Error())
	} else {
		app.logger.Infow("contact notification sent",
			"reference", message.Reference, "attempt", status)
	}

	app.jsonResponse(w, http.StatusCreated, message)
}
