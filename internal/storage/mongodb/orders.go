package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkrstore/storefront-backend/internal/domain"
	"github.com/pkrstore/storefront-backend/internal/storage"
)

type orderDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName string             `bson:"customerName"`
	Address      string             `bson:"address"`
	Phone        string             `bson:"phone"`
	City         string             `bson:"city"`
	ProductName  string             `bson:"productName"`
	TotalPrice   float64            `bson:"totalPrice"`
	Date         time.Time          `bson:"date"`
}

func (d *orderDoc) toDomain() *domain.Order {
	return &domain.Order{
		ID:           domain.NewDurableID(d.ID.Hex()),
		CustomerName: d.CustomerName,
		Address:      d.Address,
		Phone:        d.Phone,
		City:         d.City,
		ProductName:  d.ProductName,
		TotalPrice:   d.TotalPrice,
		Date:         d.Date,
	}
}

// OrderStore implements MongoDB order storage
type OrderStore struct {
	collection *mongo.Collection
}

func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	if order.Date.IsZero() {
		order.Date = time.Now()
	}
	doc := orderDoc{
		CustomerName: order.CustomerName,
		Address:      order.Address,
		Phone:        order.Phone,
		City:         order.City,
		ProductName:  order.ProductName,
		TotalPrice:   order.TotalPrice,
		Date:         order.Date,
	}
	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return wrapErr("create order", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return storage.ErrInvalidInput
	}
	order.ID = domain.NewDurableID(oid.Hex())
	return nil
}

func (s *OrderStore) GetAll(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr("list orders", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*domain.Order, 0)
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr("decode order", err)
		}
		orders = append(orders, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr("list orders", err)
	}
	return orders, nil
}
