package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is the postal address shape used on orders and profiles.
// Stored as a jsonb column.
type Address struct {
	Street     string `json:"street"`
	HouseNum   string `json:"house_number,omitempty"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country,omitempty"`
}

// Value implements driver.Valuer for jsonb storage.
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Address) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
}

// IsZero reports whether no address component is set.
func (a Address) IsZero() bool {
	return a.Street == "" && a.HouseNum == "" && a.PostalCode == "" && a.City == "" && a.Country == ""
}

// Line renders the address as a single human-readable line.
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	street := strings.TrimSpace(a.Street + " " + a.HouseNum)
	if street != "" {
		parts = append(parts, street)
	}
	if a.PostalCode != "" || a.City != "" {
		parts = append(parts, strings.TrimSpace(a.PostalCode+" "+a.City))
	}
	if a.Country != "" {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}
