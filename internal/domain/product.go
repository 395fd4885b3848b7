// Package domain defines the storefront's core types: products, orders,
// and the store-routed identifiers shared by all backing stores.
package domain

// Product is a catalog item. Products are created and mutated only
// through admin operations; customers can only list them.
type Product struct {
	ID      TaggedID `json:"_id"`
	Name    string   `json:"name"`
	Price   float64  `json:"price"`
	Image   string   `json:"image"`
	InStock bool     `json:"inStock"`
}
