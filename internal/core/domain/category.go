package domain

// Category is an expense category receipts are filed under.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsDefault  bool   `json:"isDefault"`
	AuditFields
}

// DefaultCategories are seeded once into an empty database.
var DefaultCategories = []Category{
	{Name: "Travel", Color: "#6366f1", IsDefault: true},
	{Name: "Meals", Color: "#f59e0b", IsDefault: true},
	{Name: "Accommodation", Color: "#8b5cf6", IsDefault: true},
	{Name: "Office Supplies", Color: "#06b6d4", IsDefault: true},
	{Name: "Software/Subscriptions", Color: "#3b82f6", IsDefault: true},
	{Name: "Transportation", Color: "#22c55e", IsDefault: true},
	{Name: "Communication", Color: "#ec4899", IsDefault: true},
	{Name: "Professional Services", Color: "#14b8a6", IsDefault: true},
	{Name: "Equipment", Color: "#f97316", IsDefault: true},
	{Name: "Miscellaneous", Color: "#a3a3a3", IsDefault: true},
}
