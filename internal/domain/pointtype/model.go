package pointtype

import (
	"fmt"
	"strings"
	"time"
)

// Category groups point types by how they are awarded.
type Category string

const (
	CategoryWeekly      Category = "weekly"
	CategoryOneTime     Category = "one_time"
	CategoryPerformance Category = "performance"
	CategoryCompletion  Category = "completion"
)

var AllCategories = map[Category]struct{}{
	CategoryWeekly:      {},
	CategoryOneTime:     {},
	CategoryPerformance: {},
	CategoryCompletion:  {},
}

// PointType is a named, fixed-value reward definition.
type PointType struct {
	ID        string
	Name      string
	Category  Category
	Points    int
	CreatedAt time.Time
}

func (p PointType) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("point type id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("point type name is required")
	}
	if _, ok := AllCategories[p.Category]; !ok {
		return fmt.Errorf("unknown point type category %q", p.Category)
	}
	if p.Points < 0 {
		return fmt.Errorf("point type points must be >= 0")
	}

	return nil
}

// CountsAsCompletion reports whether grants of this category mark workout participation.
func (c Category) CountsAsCompletion() bool {
	return c == CategoryWeekly || c == CategoryCompletion
}

func ParseCategory(v string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(v)))
	if _, ok := AllCategories[category]; !ok {
		return "", fmt.Errorf("unknown point type category %q", v)
	}
	return category, nil
}

// Index maps point types by id.
func Index(items []PointType) map[string]PointType {
	out := make(map[string]PointType, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}
