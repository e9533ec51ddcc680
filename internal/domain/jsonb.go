package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSONB decodes a JSONB column into dst. NULL leaves dst untouched.
func scanJSONB(src, dst interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func jsonbValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Value implements driver.Valuer.
func (a Address) Value() (driver.Value, error) { return jsonbValue(a) }

// Scan implements sql.Scanner.
func (a *Address) Scan(src interface{}) error { return scanJSONB(src, a) }

// Value implements driver.Valuer.
func (b BankInfo) Value() (driver.Value, error) { return jsonbValue(b) }

// Scan implements sql.Scanner.
func (b *BankInfo) Scan(src interface{}) error { return scanJSONB(src, b) }

// Value implements driver.Valuer.
func (p PartySnapshot) Value() (driver.Value, error) { return jsonbValue(p) }

// Scan implements sql.Scanner.
func (p *PartySnapshot) Scan(src interface{}) error { return scanJSONB(src, p) }

// Value implements driver.Valuer. A nil slice is stored as an empty array.
func (items LineItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	return jsonbValue([]LineItem(items))
}

// Scan implements sql.Scanner.
func (items *LineItems) Scan(src interface{}) error { return scanJSONB(src, (*[]LineItem)(items)) }

// Value implements driver.Valuer. A nil slice is stored as an empty array.
func (c Charges) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return jsonbValue([]Charge(c))
}

// Scan implements sql.Scanner.
func (c *Charges) Scan(src interface{}) error { return scanJSONB(src, (*[]Charge)(c)) }
