package model

import (
	"time"

	"pixelstore/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderLineModel is the document shape of one immutable order line.
type OrderLineModel struct {
	ProductID string `firestore:"productId"`
	Name      string `firestore:"name"`
	Price     string `firestore:"price"`
	Quantity  int    `firestore:"quantity"`
}

// CustomerModel is the document shape of the checkout contact info.
type CustomerModel struct {
	Name    string `firestore:"name"`
	Email   string `firestore:"email"`
	Phone   string `firestore:"phone"`
	Address string `firestore:"address"`
}

// OrderModel is the Firestore document shape of an order.
type OrderModel struct {
	Number    string           `firestore:"number"`
	Lines     []OrderLineModel `firestore:"lines"`
	Total     string           `firestore:"total"`
	Customer  CustomerModel    `firestore:"customer"`
	Status    string           `firestore:"status"`
	CreatedAt time.Time        `firestore:"createdAt,serverTimestamp"`
}

// FromOrderDomain converts a domain order into its document shape.
func FromOrderDomain(order *entity.Order) *OrderModel {
	lines := make([]OrderLineModel, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineModel{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price.String(),
			Quantity:  line.Quantity,
		})
	}

	return &OrderModel{
		Number: order.Number,
		Lines:  lines,
		Total:  order.Total.String(),
		Customer: CustomerModel{
			Name:    order.Customer.Name,
			Email:   order.Customer.Email,
			Phone:   order.Customer.Phone,
			Address: order.Customer.Address,
		},
		Status: string(order.Status),
	}
}

// ToOrderDomain converts a document back into a domain order.
func (m *OrderModel) ToOrderDomain(id string) (*entity.Order, error) {
	total, err := decimal.NewFromString(m.Total)
	if err != nil {
		return nil, errors.Wrapf(err, "order %s has malformed total %q", id, m.Total)
	}

	lines := make([]entity.OrderLine, 0, len(m.Lines))
	for _, lineM := range m.Lines {
		price, err := decimal.NewFromString(lineM.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "order %s has malformed line price %q", id, lineM.Price)
		}
		lines = append(lines, entity.OrderLine{
			ProductID: lineM.ProductID,
			Name:      lineM.Name,
			Price:     price,
			Quantity:  lineM.Quantity,
		})
	}

	return &entity.Order{
		ID:     id,
		Number: m.Number,
		Lines:  lines,
		Total:  total,
		Customer: entity.CustomerInfo{
			Name:    m.Customer.Name,
			Email:   m.Customer.Email,
			Phone:   m.Customer.Phone,
			Address: m.Customer.Address,
		},
		Status:    entity.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}, nil
}
