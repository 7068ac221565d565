package common

const (
	AdminRole = "admin"
)

// Placeholder author shown when a reviewer has no profile.
const (
	AnonymousDisplayName = "Anonymous"
	AnonymousAvatarGlyph = "?"
)

const (
	MinReviewRating        = 1
	MaxReviewRating        = 5
	MinReviewContentLength = 10
	MaxReviewTitleLength   = 100
)
