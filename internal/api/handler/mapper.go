package handler

import (
	"github.com/storefront/shop-api/internal/core/domain"
)

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toCategoryResponses(cs []*domain.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryResponse(c))
	}
	return out
}

func toProductResponse(p *domain.Product) productResponse {
	var category any = p.CategoryID
	if p.Category != nil {
		category = toCategoryResponse(p.Category)
	}
	return productResponse{
		ID:          p.ID,
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
}

func toProductResponses(ps []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toOrderDetailResponse(o *domain.OrderDetail) orderDetailResponse {
	products := make([]productResponse, 0, len(o.Products))
	for i := range o.Products {
		products = append(products, toProductResponse(&o.Products[i]))
	}

	var buyer *buyerResponse
	if o.Buyer != nil {
		buyer = &buyerResponse{ID: o.Buyer.ID, Name: o.Buyer.Name}
	}

	return orderDetailResponse{
		ID:        o.ID,
		Products:  products,
		Payment:   o.Payment,
		Buyer:     buyer,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Version:   o.Version,
	}
}

// toOrderDetailResponses never returns nil so empty lists encode as [].
func toOrderDetailResponses(orders []*domain.OrderDetail) []orderDetailResponse {
	out := make([]orderDetailResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDetailResponse(o))
	}
	return out
}

func toOrderResponse(o *domain.Order) orderResponse {
	products := o.Products
	if products == nil {
		products = []string{}
	}
	return orderResponse{
		ID:        o.ID,
		Products:  products,
		Payment:   o.Payment,
		Buyer:     o.BuyerID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Version:   o.Version,
	}
}
