package service

import "errors"

var (
	ErrUnauthenticated  = errors.New("no valid session")
	ErrEmailNotVerified = errors.New("email address is not verified")
	ErrForbidden        = errors.New("user doesn't have sufficient rights for the operation")
	ErrStoreUnavailable = errors.New("backing store unavailable")

	ErrSubjectRequired   = errors.New("subject id is required")
	ErrInvalidRating     = errors.New("rating must be an integer from 1 to 5")
	ErrContentTooShort   = errors.New("review must be at least 10 characters")
	ErrTitleTooLong      = errors.New("title must be at most 100 characters")
	ErrInvalidStatus     = errors.New("status is not allowed for this entity")
	ErrContactIncomplete = errors.New("name, email and message are required")

	ErrReviewNotFound  = errors.New("review not found")
	ErrContactNotFound = errors.New("contact submission not found")
)
