package service

import (
	"fmt"

	"github.com/mmynk/orderlines/internal/models"
	"github.com/mmynk/orderlines/internal/order"
	pb "github.com/mmynk/orderlines/pkg/orderapi"
)

// aggregate rebuilds the order aggregate from stored lines. The returned map
// gives the stored ID for each rebuilt item, so lines keep their IDs when
// another item is merged into them.
func aggregate(stored *models.Order) (*order.Order, map[*order.Item]string, error) {
	items := make([]*order.Item, len(stored.Items))
	ids := make(map[*order.Item]string, len(stored.Items))
	for i, line := range stored.Items {
		item := order.NewItem(order.SKU(line.ProductID), line.Price, line.Quantity)
		items[i] = item
		ids[item] = line.ID
	}

	agg, err := order.Restore(items)
	if err != nil {
		return nil, nil, fmt.Errorf("stored order %s is invalid: %w", stored.ID, err)
	}
	return agg, ids, nil
}

// lineItems converts the aggregate back to storage lines. Items not in ids
// are new and get an ID from the store.
func lineItems(agg *order.Order, ids map[*order.Item]string) []models.LineItem {
	lines := make([]models.LineItem, len(agg.Items()))
	for i, item := range agg.Items() {
		lines[i] = models.LineItem{
			ID:        ids[item],
			ProductID: productID(item.Product()),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			Position:  i,
		}
	}
	return lines
}

func productID(p order.Product) string {
	switch v := p.(type) {
	case order.SKU:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func toProtoOrder(o *models.Order) *pb.Order {
	items := make([]*pb.LineItem, len(o.Items))
	for i, line := range o.Items {
		items[i] = &pb.LineItem{
			ID:        line.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  int64(line.Quantity),
		}
	}
	return &pb.Order{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func toProtoUser(u *models.User) *pb.User {
	return &pb.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
