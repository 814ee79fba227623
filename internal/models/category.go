package models

// Category classifies expenses and budgets. The set is fixed: both the
// expense and budget tables share these ten values and nothing else.
type Category string

const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBillsUtilities Category = "Bills & Utilities"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryTravel         Category = "Travel"
	CategoryPersonalCare   Category = "Personal Care"
	CategoryOther          Category = "Other"
)

// categories lists all categories in enumeration order.
var categories = []Category{
	CategoryFoodDining,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBillsUtilities,
	CategoryHealthcare,
	CategoryEducation,
	CategoryTravel,
	CategoryPersonalCare,
	CategoryOther,
}

var categoryOrdinal = func() map[Category]int {
	m := make(map[Category]int, len(categories))
	for i, c := range categories {
		m[c] = i
	}
	return m
}()

// Categories returns all valid categories in enumeration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the ten known categories.
func (c Category) Valid() bool {
	_, ok := categoryOrdinal[c]
	return ok
}

// Ordinal returns the position of c in the category enumeration,
// or len(categories) for unknown values so they sort last.
func (c Category) Ordinal() int {
	if i, ok := categoryOrdinal[c]; ok {
		return i
	}
	return len(categories)
}
