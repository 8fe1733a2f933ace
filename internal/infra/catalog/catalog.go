// Package catalog provides course title resolution for order line items.
package catalog

import "coursecart/internal/domain/service"

// staticCatalog resolves course titles from an in-process table. Line items
// snapshot the resolved title at order time, so a later catalog change never
// rewrites history.
type staticCatalog struct {
	titles map[string]string
}

// New is the constructor for staticCatalog.
func New() service.CourseCatalog {
	return &staticCatalog{
		titles: map[string]string{
			"course-algo":    "Algorithms Deep Dive",
			"course-sysdes":  "System Design Masterclass",
			"course-dbms":    "Database Internals",
			"course-os":      "Operating Systems from Scratch",
			"course-network": "Computer Networks in Practice",
		},
	}
}

// ResolveTitle returns the display title for a course. Unknown identifiers
// resolve to themselves so an order can still be recorded.
func (c *staticCatalog) ResolveTitle(courseID string) string {
	if title, ok := c.titles[courseID]; ok {
		return title
	}

	return courseID
}
