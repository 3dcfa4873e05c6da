package constants

const (
	// SessionCookieName is the name of the cookie carrying the session.
	SessionCookieName = "warbler_session"

	// ContextKeyUserID is the session and gin context key holding the
	// currently logged-in user's ID.
	ContextKeyUserID = "curr_user"

	// ContextKeyMessage holds the message loaded by RequireMessageOwner.
	ContextKeyMessage = "message"

	// ContextKeyUnitOfWork holds the request's unit of work.
	ContextKeyUnitOfWork = "uow"
)

const (
	MaxMessageLength = 140

	// DefaultImageURL is assigned when signup is given no image.
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"

	DefaultTimelineSize = 100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
