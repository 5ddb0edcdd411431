package compliance

// Category identifies one of the four recognized procurement flows.
type Category string

const (
	// CategoryThreeWayAfter is a 3-way match with the invoice recorded
	// after the goods receipt.
	CategoryThreeWayAfter Category = "3_way_after"

	// CategoryThreeWayBefore is a 3-way match where the invoice may be
	// recorded before the goods receipt.
	CategoryThreeWayBefore Category = "3_way_before"

	// CategoryTwoWay is a 2-way match: purchase order and invoice
	// reconcile without a goods receipt.
	CategoryTwoWay Category = "2_way"

	// CategoryConsignment is the consignment flow: goods are received but
	// invoicing happens through a separate process.
	CategoryConsignment Category = "consignment"
)

// categoryLabels maps each category to the "Item Category" case attribute
// values it covers in the source log.
var categoryLabels = map[Category][]string{
	CategoryThreeWayAfter:  {"3-way match, invoice after GR"},
	CategoryThreeWayBefore: {"3-way match, invoice before GR"},
	CategoryTwoWay:         {"2-way match"},
	CategoryConsignment:    {"Consignment"},
}

// Categories returns all recognized categories in a fixed order.
func Categories() []Category {
	return []Category{
		CategoryThreeWayAfter,
		CategoryThreeWayBefore,
		CategoryTwoWay,
		CategoryConsignment,
	}
}

// ParseCategory validates a category identifier.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryLabels[c]; !ok {
		return "", &UnknownCategoryError{Category: s}
	}
	return c, nil
}

// Labels returns the "Item Category" attribute values covered by the
// category. Unknown categories have no labels.
func (c Category) Labels() []string {
	return categoryLabels[c]
}

// Valid reports whether the category is one of the four recognized flows.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// CategoryLabelGroups returns the category → attribute label mapping used
// to split a master log by the "Item Category" case attribute.
func CategoryLabelGroups() map[string][]string {
	groups := make(map[string][]string, len(categoryLabels))
	for c, labels := range categoryLabels {
		groups[string(c)] = append([]string(nil), labels...)
	}
	return groups
}
