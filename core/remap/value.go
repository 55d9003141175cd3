// Package remap implements multi-stage numeric remapping through chains of
// piecewise translation tables.
//
// A CategoryMap translates numbers from one named category to the next
// using offset rules; values no rule matches pass through unchanged. A
// Pipeline links category maps into a chain and walks scalar values or
// whole intervals from a source category to a target category, splitting
// intervals at every hop so matched and unmatched portions translate
// independently.
package remap

import "fmt"

// Category names a stage in a translation chain, such as "seed" or "soil".
type Category string

// Value is a number tagged with the category it currently belongs to.
type Value struct {
	Category Category `json:"category"`
	Number   uint64   `json:"number"`
}

// String renders the value as "category=number".
func (v Value) String() string {
	return fmt.Sprintf("%s=%d", v.Category, v.Number)
}
