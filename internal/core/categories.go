package core

// Category pairs a conventional spending category with its chart color.
type Category struct {
	Name  string
	Color string
}

// DefaultCategoryColor is the neutral gray used for categories outside the
// fixed palette.
const DefaultCategoryColor = "#cbd5e1"

// Categories is the fixed palette. "Transfer", "Refunds" and "Cashback"
// exist for synthetic entries rather than user-picked spending.
var Categories = []Category{
	{Name: "Food & Dining", Color: "#f59e0b"},
	{Name: "Groceries", Color: "#10b981"},
	{Name: "Travel", Color: "#3b82f6"},
	{Name: "Bills & EMI", Color: "#ef4444"},
	{Name: "Shopping", Color: "#8b5cf6"},
	{Name: "Electronics", Color: "#0ea5e9"},
	{Name: "Fuel", Color: "#6366f1"},
	{Name: "Salary", Color: "#059669"},
	{Name: "Investment", Color: "#d97706"},
	{Name: "Others", Color: "#64748b"},
	{Name: "Refunds", Color: "#0ea5e9"},
	{Name: "Cashback", Color: "#8b5cf6"},
	{Name: "Transfer", Color: "#6366f1"},
}

// CategoryColor returns the palette color for a category name, or the
// neutral default when the name is unknown.
func CategoryColor(name string) string {
	for _, c := range Categories {
		if c.Name == name {
			return c.Color
		}
	}
	return DefaultCategoryColor
}

// Synthetic categories assigned by the engine.
const (
	CategoryCashback = "Cashback"
	CategoryRefunds  = "Refunds"
	CategoryTransfer = "Transfer"
)
