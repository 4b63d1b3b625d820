package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a value does not name a known Category
var ErrUnknownCategory = errors.New("unknown pizza category")

// Category is the closed set of pizza categories. The value is the constant
// name, the database stores the display label.
type Category string

const (
	CategoryMeat       Category = "VIANDE"
	CategoryFish       Category = "POISSON"
	CategoryVegetarian Category = "SANS_VIANDE"
)

var categoryLabels = map[Category]string{
	CategoryMeat:       "Viande",
	CategoryFish:       "Poisson",
	CategoryVegetarian: "Sans Viande",
}

// Categories returns every known category
func Categories() []Category {
	return []Category{CategoryMeat, CategoryFish, CategoryVegetarian}
}

// ParseCategory accepts either the constant name or the display label,
// in any case: "Sans Viande", "sans viande" and "SANS_VIANDE" all match.
func ParseCategory(value string) (Category, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "_")
	c := Category(normalized)
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
	return c, nil
}

// Label returns the display form, e.g. "Sans Viande"
func (c Category) Label() string {
	return categoryLabels[c]
}

// Valid reports whether c is a member of the enumeration
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Compare orders categories by their display label
func (c Category) Compare(other Category) int {
	return strings.Compare(c.Label(), other.Label())
}

func (c Category) String() string {
	return string(c)
}

// Value stores the display label
func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return c.Label(), nil
}

// Scan maps a CATEGORIE column back onto the enumeration
func (c *Category) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrUnknownCategory)
	default:
		return fmt.Errorf("%w: unsupported column type %T", ErrUnknownCategory, src)
	}
	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return []byte(c), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
