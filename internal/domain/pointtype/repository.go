package pointtype

import "context"

// Repository describes point type persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, category *Category) ([]PointType, error)
	GetByIDs(ctx context.Context, ids []string) ([]PointType, error)
	Create(ctx context.Context, item PointType) error
}
