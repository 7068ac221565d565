package controller

import (
	"net/http"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

const unavailableReason = "Service is temporarily unavailable. Please try again."

type adminRoutesHandler struct {
	reviewService  service.Review
	contactService service.Contact
	validate       *validator.Validate
}

func newAdminRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *adminRoutesHandler {
	h := &adminRoutesHandler{reviewService: services.Review, contactService: services.Contact, validate: v}
	outer.GET("/reviews", h.GetModerationQueue)
	outer.GET("/reviews/:reviewId", h.GetReview)
	outer.PUT("/reviews/:reviewId/status", h.UpdateReviewStatus)

	outer.GET("/contact", h.GetContactSubmissions)
	outer.PUT("/contact/:submissionId/status", h.UpdateContactStatus)

	return h
}

type getModerationQueueInput struct {
	Status string `query:"status" validate:"oneof=pending approved rejected"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

func newGetModerationQueueInput() getModerationQueueInput {
	return getModerationQueueInput{Status: string(entity.ReviewPending), Limit: defaultLimit, Offset: defaultOffset}
}

// /admin/reviews
func (h *adminRoutesHandler) GetModerationQueue(c echo.Context) error {
	input := newGetModerationQueueInput()
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Input data is not formed correctly", err)
	}

	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, getAllErrorMessages(err), err)
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	reviews, err := h.reviewService.GetModerationQueue(c.Request().Context(), entity.ReviewStatus(input.Status), pg, sessionFrom(c))
	if err != nil {
		return respondError(c, err, unavailableReason)
	}

	if e := c.JSON(http.StatusOK, reviews); e != nil {
		return e
	}

	return nil
}

// /admin/reviews/:reviewId
func (h *adminRoutesHandler) GetReview(c echo.Context) error {
	reviewId, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return badRequest(c, "Review id is not a valid uuid", err)
	}

	review, err := h.reviewService.GetReview(c.Request().Context(), reviewId, sessionFrom(c))
	if err != nil {
		return respondError(c, err, unavailableReason)
	}

	if e := c.JSON(http.StatusOK, review); e != nil {
		return e
	}

	return nil
}

// /admin/reviews/:reviewId/status
func (h *adminRoutesHandler) UpdateReviewStatus(c echo.Context) error {
	reviewId, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return badRequest(c, "Review id is not a valid uuid", err)
	}

	// the service rejects non-admins before it looks at the status
	status := entity.ReviewStatus(c.QueryParam("status"))
	err = h.reviewService.SetReviewStatus(c.Request().Context(), reviewId, status, sessionFrom(c))
	if err != nil {
		return respondError(c, err, "Failed to update review. Please try again.")
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type getContactSubmissionsInput struct {
	Status string `query:"status" validate:"oneof=new in_progress responded"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

func newGetContactSubmissionsInput() getContactSubmissionsInput {
	return getContactSubmissionsInput{Status: string(entity.ContactNew), Limit: defaultLimit, Offset: defaultOffset}
}

// /admin/contact
func (h *adminRoutesHandler) GetContactSubmissions(c echo.Context) error {
	input := newGetContactSubmissionsInput()
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Input data is not formed correctly", err)
	}

	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, getAllErrorMessages(err), err)
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	submissions, err := h.contactService.GetContactSubmissions(c.Request().Context(), entity.ContactStatus(input.Status), pg, sessionFrom(c))
	if err != nil {
		return respondError(c, err, unavailableReason)
	}

	if e := c.JSON(http.StatusOK, submissions); e != nil {
		return e
	}

	return nil
}

// /admin/contact/:submissionId/status
func (h *adminRoutesHandler) UpdateContactStatus(c echo.Context) error {
	submissionId, err := uuid.Parse(c.Param("submissionId"))
	if err != nil {
		return badRequest(c, "Submission id is not a valid uuid", err)
	}

	status := entity.ContactStatus(c.QueryParam("status"))
	err = h.contactService.SetContactStatus(c.Request().Context(), submissionId, status, sessionFrom(c))
	if err != nil {
		return respondError(c, err, "Failed to update contact submission. Please try again.")
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
