package enums

import "fmt"

// SellerCategory distinguishes private home sellers from registered businesses.
type SellerCategory string

const (
	SellerCategoryIndividual SellerCategory = "INDIVIDUAL"
	SellerCategoryBusiness   SellerCategory = "BUSINESS"
)

var validSellerCategories = []SellerCategory{
	SellerCategoryIndividual,
	SellerCategoryBusiness,
}

// String implements fmt.Stringer.
func (s SellerCategory) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SellerCategory.
func (s SellerCategory) IsValid() bool {
	for _, candidate := range validSellerCategories {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSellerCategory converts raw input into a SellerCategory.
func ParseSellerCategory(value string) (SellerCategory, error) {
	for _, candidate := range validSellerCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seller category %q", value)
}
