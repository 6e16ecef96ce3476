package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fitness-league/internal/domain/pointtype"
)

type PointTypeRepository struct {
	mu     sync.RWMutex
	items  map[string]pointtype.PointType
	orders []string
}

func NewPointTypeRepository(types []pointtype.PointType) *PointTypeRepository {
	items := make(map[string]pointtype.PointType, len(types))
	orders := make([]string, 0, len(types))
	for _, item := range types {
		items[item.ID] = item
		orders = append(orders, item.ID)
	}

	return &PointTypeRepository{items: items, orders: orders}
}

func (r *PointTypeRepository) List(_ context.Context, category *pointtype.Category) ([]pointtype.PointType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pointtype.PointType, 0, len(r.orders))
	for _, id := range r.orders {
		item := r.items[id]
		if category != nil && item.Category != *category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PointTypeRepository) GetByIDs(_ context.Context, ids []string) ([]pointtype.PointType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pointtype.PointType, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PointTypeRepository) Create(_ context.Context, item pointtype.PointType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("point type %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}
