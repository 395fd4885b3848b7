package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pkrstore/storefront-backend/internal/domain"
	"github.com/pkrstore/storefront-backend/internal/storage"
)

// productDoc is the MongoDB representation of a product. The ObjectID
// hex becomes the durable-kind key of the domain identifier.
type productDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Price   float64            `bson:"price"`
	Image   string             `bson:"image"`
	InStock bool               `bson:"inStock"`
}

func (d *productDoc) toDomain() *domain.Product {
	return &domain.Product{
		ID:      domain.NewDurableID(d.ID.Hex()),
		Name:    d.Name,
		Price:   d.Price,
		Image:   d.Image,
		InStock: d.InStock,
	}
}

// ProductStore implements MongoDB product storage
type ProductStore struct {
	collection *mongo.Collection
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	doc := productDoc{
		Name:    product.Name,
		Price:   product.Price,
		Image:   product.Image,
		InStock: product.InStock,
	}
	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return wrapErr("create product", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return storage.ErrInvalidInput
	}
	product.ID = domain.NewDurableID(oid.Hex())
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id domain.TaggedID) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc productDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapErr("get product", err)
	}
	return doc.toDomain(), nil
}

func (s *ProductStore) GetAll(ctx context.Context) ([]*domain.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapErr("list products", err)
	}
	defer cursor.Close(ctx)

	products := make([]*domain.Product, 0)
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr("decode product", err)
		}
		products = append(products, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr("list products", err)
	}
	return products, nil
}

func (s *ProductStore) ToggleStock(ctx context.Context, id domain.TaggedID) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	product.InStock = !product.InStock
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"inStock": product.InStock}},
	)
	if err != nil {
		return nil, wrapErr("toggle stock", err)
	}
	if res.MatchedCount == 0 {
		return nil, storage.ErrNotFound
	}
	return product, nil
}

func (s *ProductStore) Delete(ctx context.Context, id domain.TaggedID) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapErr("delete product", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// objectID converts a durable-kind identifier to an ObjectID. A key that
// is not valid ObjectID hex cannot name a durable record.
func objectID(id domain.TaggedID) (primitive.ObjectID, error) {
	if id.Kind != domain.KindDurable {
		return primitive.NilObjectID, storage.ErrNotFound
	}
	oid, err := primitive.ObjectIDFromHex(id.Key)
	if err != nil {
		return primitive.NilObjectID, storage.ErrNotFound
	}
	return oid, nil
}
