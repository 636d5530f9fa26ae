package cart

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/lasantapapa/pos-app/models"
)

// Line is one cart entry for a single product. Lines live only in memory;
// on checkout they become order_items rows and the cart is cleared.
type Line struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity"`
	PriceAtTime float64  `json:"price_at_time"`
	Notes       string   `json:"notes,omitempty"`
	Condiments  []string `json:"condiments,omitempty"`
}

// Cart aggregates the lines of one caja session. At most one line exists
// per product; adding the same product again bumps its quantity.
type Cart struct {
	mu    sync.Mutex
	lines []*Line
}

func New() *Cart {
	return &Cart{}
}

// AddProduct adds one unit of the product. The unit price is snapshotted
// now; later catalog edits do not touch existing lines.
func (ct *Cart) AddProduct(p models.Product) Line {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	for _, line := range ct.lines {
		if line.ProductID == p.ID {
			line.Quantity++
			return *line
		}
	}

	line := &Line{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		Quantity:    1,
		PriceAtTime: p.Price,
	}
	ct.lines = append(ct.lines, line)
	return *line
}

// SetQuantity sets a line's quantity, clamping anything below 1 to 1.
// Removal is a separate explicit action. Unknown lines are ignored.
func (ct *Cart) SetQuantity(lineID string, quantity int) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	line := ct.find(lineID)
	if line == nil {
		return false
	}
	if quantity < 1 {
		quantity = 1
	}
	line.Quantity = quantity
	return true
}

// SetNotes replaces the free-text note of a line.
func (ct *Cart) SetNotes(lineID, notes string) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	line := ct.find(lineID)
	if line == nil {
		return false
	}
	line.Notes = notes
	return true
}

// ToggleCondiment adds the label to the line's selection if absent and
// removes it if present. The UI only offers cremas on salchipapa lines but
// the operation itself does not care about category.
func (ct *Cart) ToggleCondiment(lineID, label string) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	line := ct.find(lineID)
	if line == nil {
		return false
	}
	for i, existing := range line.Condiments {
		if existing == label {
			line.Condiments = append(line.Condiments[:i], line.Condiments[i+1:]...)
			return true
		}
	}
	line.Condiments = append(line.Condiments, label)
	return true
}

// RemoveLine drops a line unconditionally.
func (ct *Cart) RemoveLine(lineID string) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	for i, line := range ct.lines {
		if line.ID == lineID {
			ct.lines = append(ct.lines[:i], ct.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Lines returns a snapshot of the cart in insertion order.
func (ct *Cart) Lines() []Line {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	out := make([]Line, 0, len(ct.lines))
	for _, line := range ct.lines {
		copied := *line
		copied.Condiments = append([]string(nil), line.Condiments...)
		out = append(out, copied)
	}
	return out
}

// Total recomputes the cart total on every call, rounded to 2 decimals.
func (ct *Cart) Total() float64 {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	var total float64
	for _, line := range ct.lines {
		total += line.PriceAtTime * float64(line.Quantity)
	}
	return math.Round(total*100) / 100
}

// Clear empties the cart after a successful checkout.
func (ct *Cart) Clear() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.lines = nil
}

func (ct *Cart) find(lineID string) *Line {
	for _, line := range ct.lines {
		if line.ID == lineID {
			return line
		}
	}
	return nil
}
