package service

// CourseCatalog resolves course titles for the order snapshot. The catalog
// itself is external content; orders only need the title as it read at
// purchase time.
type CourseCatalog interface {
	// ResolveTitle returns the display title for a course id. Unknown ids
	// resolve to the id itself so checkout never fails on catalog drift.
	ResolveTitle(courseID string) string
}
