package cart

// Item identifies a purchasable product as the cart needs it. The cart
// snapshots name, price and image at add time; later catalog edits do not
// rewrite existing lines.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Image     string `json:"image,omitempty"`
}

// Line is one cart row. Quantity is always >= 1; a line that would drop
// to zero is removed instead of persisted.
type Line struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// State is the persisted cart snapshot. TotalPrice is maintained
// incrementally on every mutation rather than recomputed from lines, so
// the two must stay in sync through every write path.
type State struct {
	Lines      []Line `json:"lines"`
	TotalPrice int64  `json:"total_price"`
}

// ItemCount sums line quantities.
func (s State) ItemCount() int {
	count := 0
	for _, l := range s.Lines {
		count += l.Quantity
	}
	return count
}

func (s State) lineIndex(productID string) int {
	for i, l := range s.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
