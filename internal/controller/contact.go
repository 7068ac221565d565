package controller

import (
	"net/http"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type contactRoutesHandler struct {
	contactService service.Contact
	validate       *validator.Validate
}

func newContactRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *contactRoutesHandler {
	h := &contactRoutesHandler{contactService: services.Contact, validate: v}
	outer.POST("/contact", h.PostContact)

	return h
}

type postContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Topic   string `json:"topic" validate:"max=100"`
	Message string `json:"message" validate:"required,max=5000"`
}

// /contact
func (h *contactRoutesHandler) PostContact(c echo.Context) error {
	var input postContactInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Input data is not formed correctly", err)
	}

	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, getAllErrorMessages(err), err)
	}

	model := &entity.CreateContactInput{
		Name:    input.Name,
		Email:   input.Email,
		Topic:   input.Topic,
		Message: input.Message,
	}

	submission, err := h.contactService.CreateContactSubmission(c.Request().Context(), model)
	if err != nil {
		return respondError(c, err, "Failed to send your message. Please try again.")
	}

	if e := c.JSON(http.StatusCreated, submission); e != nil {
		return e
	}

	return nil
}
