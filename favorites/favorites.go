// Package favorites is a shopper's set of liked products, keyed by id.
package favorites

import "encoding/json"

// Entry is a snapshot of a liked product.
type Entry struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Category  string `json:"category,omitempty"`
	Price     int64  `json:"price"`
	Discount  int    `json:"discount,omitempty"`
}

// Set keeps entries in the order they were liked. The zero value is empty.
type Set struct {
	entries []Entry
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// Add inserts e unless its product is already present. It reports whether
// the set changed.
func (s *Set) Add(e Entry) bool {
	if s.Contains(e.ProductID) {
		return false
	}
	s.entries = append(s.entries, e)
	return true
}

// Remove deletes productID. It reports whether the set changed.
func (s *Set) Remove(productID int64) bool {
	for i, e := range s.entries {
		if e.ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports membership of productID.
func (s *Set) Contains(productID int64) bool {
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// List returns a copy of the entries.
func (s *Set) List() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Set) Len() int {
	return len(s.entries)
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return &Set{entries: s.List()}
}

func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	s.entries = entries
	return nil
}
