package constants

// Category is the coarse classification of a purchased item.
type Category string

const (
	Clothes Category = "clothes"
	Food    Category = "food"
	Other   Category = "other"
)

var allCategories = []Category{Clothes, Food, Other}

func CategoriesAsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CanonicalizeCategory maps free-form input onto the fixed category set.
func CanonicalizeCategory(input string) (Category, bool) {
	for _, cat := range allCategories {
		if string(cat) == input {
			return cat, true
		}
	}
	return Other, false
}
