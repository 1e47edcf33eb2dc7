package pagination

// MaxPageLimit bounds how many items a single page may request.
const MaxPageLimit = 100

// DefaultPageLimit is used when the client does not specify a limit.
const DefaultPageLimit = 20

// Clamp normalizes page/limit query values and derives the offset.
func Clamp(page, limit int) (clampedPage, clampedLimit, offset int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit, (page - 1) * limit
}
