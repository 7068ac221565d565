package controller

import (
	"net/http"

	"review-lifecycle-api/internal/auth"
	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/service"

	"github.com/labstack/echo"
)

type reviewRoutesHandler struct {
	reviewService service.Review
	tokens        *auth.Tokens
}

func newReviewRoutesHandler(outer *echo.Group, services *service.Services, tokens *auth.Tokens) *reviewRoutesHandler {
	h := &reviewRoutesHandler{reviewService: services.Review, tokens: tokens}
	outer.POST("/subjects/:subjectId/reviews", h.PostReview)
	outer.GET("/subjects/:subjectId/reviews", h.GetVisibleReviews)
	outer.GET("/subjects/:subjectId/reviews/live", h.FollowReviews)
	outer.GET("/subjects/:subjectId/rating", h.GetRatingSummary)

	return h
}

// Rating and content are checked by the service, after the session, so an
// unverified caller learns about verification before anything else.
type postReviewInput struct {
	Rating  int     `json:"rating"`
	Title   *string `json:"title"`
	Content string  `json:"content"`
}

type postReviewResponse struct {
	Id string `json:"id"`
}

// /subjects/:subjectId/reviews
func (h *reviewRoutesHandler) PostReview(c echo.Context) error {
	var input postReviewInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Input data is not formed correctly", err)
	}

	model := &entity.CreateReviewInput{
		SubjectId: c.Param("subjectId"),
		Rating:    input.Rating,
		Title:     input.Title,
		Content:   input.Content,
	}

	id, err := h.reviewService.SubmitReview(c.Request().Context(), sessionFrom(c), model)
	if err != nil {
		return respondError(c, err, "Failed to submit review. Please try again.")
	}

	if e := c.JSON(http.StatusCreated, postReviewResponse{id.String()}); e != nil {
		return e
	}

	return nil
}

// /subjects/:subjectId/reviews
func (h *reviewRoutesHandler) GetVisibleReviews(c echo.Context) error {
	reviews := h.reviewService.ListVisibleReviews(c.Request().Context(), c.Param("subjectId"), sessionFrom(c))
	if e := c.JSON(http.StatusOK, reviews); e != nil {
		return e
	}

	return nil
}

// /subjects/:subjectId/rating
func (h *reviewRoutesHandler) GetRatingSummary(c echo.Context) error {
	summary := h.reviewService.GetRatingSummary(c.Request().Context(), c.Param("subjectId"))
	if e := c.JSON(http.StatusOK, summary); e != nil {
		return e
	}

	return nil
}
