package models

// Table names of the synchronized business records. Outbox entries and
// remote-apply payloads are keyed by these names.
const (
	TableShops     = "shops"
	TableProducts  = "products"
	TableCustomers = "customers"
	TableSales     = "sales"
	TableExpenses  = "expenses"
)
