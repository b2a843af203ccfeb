package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Products  []primitive.ObjectID `bson:"products"`
	Payment   bson.M               `bson:"payment,omitempty"`
	Buyer     primitive.ObjectID   `bson:"buyer"`
	Status    string               `bson:"status"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
	Version   int64                `bson:"__v"`
}

// orderDetailDocument is the shape produced by orderPipeline. ProductDocs
// holds each referenced product once; Products keeps the stored references.
type orderDetailDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Products    []primitive.ObjectID `bson:"products"`
	ProductDocs []productDocument    `bson:"productDocs"`
	Payment     bson.M               `bson:"payment,omitempty"`
	Buyer       *buyerDocument       `bson:"buyer,omitempty"`
	Status      string               `bson:"status"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
	Version     int64                `bson:"__v"`
}

type buyerDocument struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// storedStatus normalises legacy spellings. Unknown values are passed
// through untouched so one bad document does not hide the others.
func storedStatus(s string) domain.OrderStatus {
	if st, err := domain.ParseOrderStatus(s); err == nil {
		return st
	}
	return domain.OrderStatus(s)
}

func (d *orderDocument) toDomain() *domain.Order {
	return &domain.Order{
		ID:        d.ID.Hex(),
		Products:  hexIDs(d.Products),
		Payment:   map[string]any(d.Payment),
		BuyerID:   d.Buyer.Hex(),
		Status:    storedStatus(d.Status),
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// populateProducts replaces every reference with its product, keeping the
// stored order and repeated references. References to deleted products are
// dropped.
func populateProducts(refs []primitive.ObjectID, docs []productDocument) []domain.Product {
	byID := make(map[primitive.ObjectID]*productDocument, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	products := make([]domain.Product, 0, len(refs))
	for _, ref := range refs {
		if doc, ok := byID[ref]; ok {
			products = append(products, *doc.toDomain())
		}
	}
	return products
}

func (d *orderDetailDocument) toDomain() *domain.OrderDetail {
	products := populateProducts(d.Products, d.ProductDocs)

	var buyer *domain.OrderBuyer
	if d.Buyer != nil && !d.Buyer.ID.IsZero() {
		buyer = &domain.OrderBuyer{ID: d.Buyer.ID.Hex(), Name: d.Buyer.Name}
	}

	return &domain.OrderDetail{
		ID:        d.ID.Hex(),
		Products:  products,
		Payment:   map[string]any(d.Payment),
		Buyer:     buyer,
		Status:    storedStatus(d.Status),
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Create inserts a new order and sets its ID.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	buyer, ok := objectID(o.BuyerID)
	if !ok {
		return fmt.Errorf("order buyer: %w", domain.ErrInvalidID)
	}
	products, ok := objectIDs(o.Products)
	if !ok {
		return fmt.Errorf("order products: %w", domain.ErrInvalidID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := orderDocument{
		Products:  products,
		Payment:   bson.M(o.Payment),
		Buyer:     buyer,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Version:   o.Version,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	return nil
}

// orderPipeline builds the aggregation that resolves product and buyer
// references. Product photos and every buyer field except name are dropped.
func orderPipeline(buyer *primitive.ObjectID, newestFirst bool) mongo.Pipeline {
	var p mongo.Pipeline
	if buyer != nil {
		p = append(p, bson.D{{Key: "$match", Value: bson.D{{Key: "buyer", Value: *buyer}}}})
	}
	if newestFirst {
		p = append(p, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}})
	}
	return append(p,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionProducts},
			{Key: "localField", Value: "products"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "productDocs"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "productDocs.photo", Value: 0}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "let", Value: bson.D{{Key: "buyerId", Value: "$buyer"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$_id", "$$buyerId"}},
				}}}}},
				bson.D{{Key: "$project", Value: bson.D{{Key: "name", Value: 1}}}},
			}},
			{Key: "as", Value: "buyer"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$buyer"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)
}

// Find returns orders with products and buyer populated. A malformed buyer id
// matches nothing.
func (r *OrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*domain.OrderDetail, error) {
	var buyer *primitive.ObjectID
	if filter.BuyerID != "" {
		oid, ok := objectID(filter.BuyerID)
		if !ok {
			return []*domain.OrderDetail{}, nil
		}
		buyer = &oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, orderPipeline(buyer, filter.NewestFirst))
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDetailDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]*domain.OrderDetail, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toDomain())
	}
	return orders, nil
}

// UpdateStatus overwrites the status, bumps updatedAt and the version, and
// returns the document as it is after the write. With expectedVersion the
// write is a compare-and-set on __v.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, expectedVersion *int64) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if expectedVersion != nil {
		filter["__v"] = *expectedVersion
	}
	update := bson.M{
		"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"__v": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if expectedVersion == nil {
		return nil, domain.ErrOrderNotFound
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return nil, domain.ErrOrderConflict
}
