package catalog

// Item describes one product definition; it never changes after creation.
type Item struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	CalorieCount    int    `json:"calorie_count"`
	InitialQuantity int    `json:"initial_quantity"`
}

// Slot is one fixed catalog position: at most one item plus its live stock and price.
type Slot struct {
	Item  *Item `json:"item,omitempty"`
	Stock int   `json:"stock"`
	Price int   `json:"price"`
}

// Occupied reports whether the slot currently holds an item definition.
func (s Slot) Occupied() bool {
	return s.Item != nil
}

// Listing is the display projection used by the menu and the HTTP surface.
type Listing struct {
	Slot  int    `json:"slot"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Price int    `json:"price"`
}
