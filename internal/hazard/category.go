package hazard

import (
	"fmt"
	"strings"
)

// Category is the kind of environmental hazard being reported.
type Category string

const (
	Air   Category = "air"
	Water Category = "water"
	Waste Category = "waste"
)

// Categories lists the known categories, most urgent first.
var Categories = []Category{Air, Water, Waste}

var urgency = map[Category]int{
	Air:   3,
	Water: 2,
	Waste: 1,
}

// Urgency returns the display rank of the category; unknown categories rank 0.
func (c Category) Urgency() int {
	return urgency[c]
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := urgency[c]
	return ok
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown hazard type %q", s)
	}
	return c, nil
}
