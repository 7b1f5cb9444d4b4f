package tree

import "fmt"

// Counter hands out node identifiers for a single parse.
//
// Create a new Counter for every conversion, they are not safe for
// concurrent use.
type Counter struct {
	next int
}

// NewCounter returns a [Counter] starting at 1.
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next returns the next identifier e.g. "controller_3".
func (c *Counter) Next() string {
	if c.next == 0 {
		c.next = 1
	}

	id := fmt.Sprintf("controller_%d", c.next)
	c.next++

	return id
}
