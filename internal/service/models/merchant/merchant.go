package merchant

// Merchant represents a selling entity with a storefront.
type Merchant struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Image   string  `json:"image"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	IsOpen  bool    `json:"isOpen"`

	// Distance in kilometers from the customer, populated only by the
	// nearby lookup.
	Distance float64 `json:"distance,omitempty"`
}
