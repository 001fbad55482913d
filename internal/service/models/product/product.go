package product

// Product represents an item a merchant sells.
type Product struct {
	ID          string `json:"id"`
	MerchantID  string `json:"merchantId"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	IsAvailable bool   `json:"isAvailable"`
}
