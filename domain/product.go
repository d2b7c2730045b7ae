package domain

type Product struct {
	ID            int     `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Category      string  `db:"category" json:"category"`
	Quantity      int     `db:"quantity" json:"quantity"`
	PurchasePrice float64 `db:"purchase_price" json:"purchase_price"`
	SalePrice     float64 `db:"sale_price" json:"sale_price"`
	DateAdded     string  `db:"date_added" json:"date_added"`
}
