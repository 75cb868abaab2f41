// Package similar ranks catalog entries by how closely they resemble a
// reference controller.
package similar

import "github.com/bvoo/arcadewiki/internal/catalog"

// DefaultLimit is the number of results returned when no limit is given.
const DefaultLimit = 3

// Result is one related controller with its score and the reasons that
// contributed to it, in rule order.
type Result struct {
	Entry   catalog.Entry
	Score   int
	Reasons []string
}
