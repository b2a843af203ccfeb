package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storefront/shop-api/internal/core/domain"
)

func stageNames(p []bson.D) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestOrderPipeline_BuyerOrders(t *testing.T) {
	buyer := primitive.NewObjectID()
	p := orderPipeline(&buyer, false)

	got := stageNames(p)
	want := []string{"$match", "$lookup", "$project", "$lookup", "$unwind"}
	if len(got) != len(want) {
		t.Fatalf("stages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stages = %v, want %v", got, want)
		}
	}

	match := p[0][0].Value.(bson.D)
	if match[0].Key != "buyer" || match[0].Value != buyer {
		t.Fatalf("unexpected match stage: %v", match)
	}
}

func TestOrderPipeline_AllOrdersNewestFirst(t *testing.T) {
	p := orderPipeline(nil, true)

	if p[0][0].Key != "$sort" {
		t.Fatalf("expected $sort first, got %v", stageNames(p))
	}
	sort := p[0][0].Value.(bson.D)
	if sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Fatalf("unexpected sort: %v", sort)
	}
	for _, name := range stageNames(p) {
		if name == "$match" {
			t.Fatalf("all-orders pipeline must not filter")
		}
	}
}

func TestOrderPipeline_BuyerProjectionKeepsOnlyName(t *testing.T) {
	p := orderPipeline(nil, false)

	var lookup bson.D
	for _, stage := range p {
		if stage[0].Key != "$lookup" {
			continue
		}
		l := stage[0].Value.(bson.D)
		if l[0].Value == collectionUsers {
			lookup = l
		}
	}
	if lookup == nil {
		t.Fatalf("no users lookup in %v", stageNames(p))
	}

	var sub bson.A
	for _, e := range lookup {
		if e.Key == "pipeline" {
			sub = e.Value.(bson.A)
		}
	}
	project := sub[len(sub)-1].(bson.D)[0].Value.(bson.D)
	if len(project) != 1 || project[0].Key != "name" {
		t.Fatalf("buyer projection leaks fields: %v", project)
	}
}

func TestStoredStatus(t *testing.T) {
	cases := map[string]domain.OrderStatus{
		"deliverd":    domain.OrderDelivered,
		"delivered":   domain.OrderDelivered,
		"Not Process": domain.OrderNotProcessed,
		"weird":       domain.OrderStatus("weird"),
	}
	for in, want := range cases {
		if got := storedStatus(in); got != want {
			t.Fatalf("storedStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOrderPipeline_ProductsLookupKeepsReferences(t *testing.T) {
	p := orderPipeline(nil, false)

	lookup := p[0][0].Value.(bson.D)
	for _, e := range lookup {
		if e.Key == "as" && e.Value == "products" {
			t.Fatalf("product lookup must not overwrite the stored references")
		}
	}
	project := p[1][0].Value.(bson.D)
	if project[0].Key != "productDocs.photo" || project[0].Value != 0 {
		t.Fatalf("unexpected projection: %v", project)
	}
}

func TestOrderDetailDocument_RepeatedProductsKeepCountAndOrder(t *testing.T) {
	a := productDocument{ID: primitive.NewObjectID(), Name: "mug"}
	b := productDocument{ID: primitive.NewObjectID(), Name: "lamp"}
	deleted := primitive.NewObjectID()

	doc := orderDetailDocument{
		ID:          primitive.NewObjectID(),
		Products:    []primitive.ObjectID{a.ID, a.ID, deleted, b.ID},
		ProductDocs: []productDocument{b, a},
		Status:      "Processing",
	}

	got := doc.toDomain().Products
	want := []string{"mug", "mug", "lamp"}
	if len(got) != len(want) {
		t.Fatalf("got %d products, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("product %d = %q, want %q", i, got[i].Name, name)
		}
	}
	if got[0].ID != a.ID.Hex() || got[2].ID != b.ID.Hex() {
		t.Errorf("unexpected ids: %s, %s", got[0].ID, got[2].ID)
	}
}
