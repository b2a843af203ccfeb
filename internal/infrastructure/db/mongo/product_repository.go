package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type ProductRepository struct {
	col        *mongo.Collection
	categories *CategoryRepository
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		col:        db.Collection(collectionProducts),
		categories: NewCategoryRepository(db),
	}
}

// productDocument never carries the photo blob; reads project it away.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    primitive.ObjectID `bson:"category"`
	Quantity    int                `bson:"quantity"`
	Shipping    bool               `bson:"shipping"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

var withoutPhoto = bson.M{"photo": 0}

func (d *productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Price:       d.Price,
		CategoryID:  d.Category.Hex(),
		Quantity:    d.Quantity,
		Shipping:    d.Shipping,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	category, ok := objectID(p.CategoryID)
	if !ok {
		return nil, fmt.Errorf("product category: %w", domain.ErrInvalidProduct)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := productDocument{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    category,
		Quantity:    p.Quantity,
		Shipping:    p.Shipping,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	oid, ok := objectID(p.ID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	category, ok := objectID(p.CategoryID)
	if !ok {
		return nil, fmt.Errorf("product category: %w", domain.ErrInvalidProduct)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price,
		"category":    category,
		"quantity":    p.Quantity,
		"shipping":    p.Shipping,
		"updatedAt":   p.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPhoto)

	var doc productDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// FindBySlug returns the product with its category resolved.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDocument
	opts := options.FindOne().SetProjection(withoutPhoto)
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	products := []*domain.Product{doc.toDomain()}
	if err := r.populateCategories(ctx, products, []productDocument{doc}); err != nil {
		return nil, err
	}
	return products[0], nil
}

// productQuery translates a filter into a query document. ok is false when
// an id in the filter is malformed, in which case nothing can match.
func productQuery(f ports.ProductFilter) (bson.M, bool) {
	q := bson.M{}

	if len(f.CategoryIDs) > 0 {
		ids, ok := objectIDs(f.CategoryIDs)
		if !ok {
			return nil, false
		}
		q["category"] = bson.M{"$in": ids}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}

	if f.Keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	if f.ExcludeID != "" {
		oid, ok := objectID(f.ExcludeID)
		if !ok {
			return nil, false
		}
		q["_id"] = bson.M{"$ne": oid}
	}

	return q, true
}

func (r *ProductRepository) Find(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	q, ok := productQuery(f)
	if !ok {
		return []*domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(withoutPhoto)
	if f.NewestFirst {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	if f.Skip > 0 {
		opts.SetSkip(int64(f.Skip))
	}
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toDomain())
	}

	if f.PopulateCategory {
		if err := r.populateCategories(ctx, products, docs); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context, f ports.ProductFilter) (int64, error) {
	q, ok := productQuery(f)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		n   int64
		err error
	)
	if len(q) == 0 {
		n, err = r.col.EstimatedDocumentCount(ctx)
	} else {
		n, err = r.col.CountDocuments(ctx, q)
	}
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// populateCategories resolves category references with a single $in query.
// products and docs are parallel slices.
func (r *ProductRepository) populateCategories(ctx context.Context, products []*domain.Product, docs []productDocument) error {
	seen := make(map[primitive.ObjectID]struct{}, len(docs))
	ids := make([]primitive.ObjectID, 0, len(docs))
	for i := range docs {
		if _, ok := seen[docs[i].Category]; ok {
			continue
		}
		seen[docs[i].Category] = struct{}{}
		ids = append(ids, docs[i].Category)
	}

	byID, err := r.categories.findByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range docs {
		products[i].Category = byID[docs[i].Category]
	}
	return nil
}
