package store

// Item is a purchasable product.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Customer is identified in every lookup by Name.
type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Order carries an uninterpreted timestamp string.
type Order struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

// ItemCount pairs an item name with the number of orders containing it.
type ItemCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
