package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a JSON decimal that accepts bare and quoted numbers. Null and
// blank strings decode as absent; any other non-numeric value is an error so
// that a malformed row is rejected instead of reading as zero. Values never
// pass through float64.
type Number struct {
	v decimal.NullDecimal
}

func (n *Number) UnmarshalJSON(b []byte) error {
	n.v = decimal.NullDecimal{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("invalid number %s: %w", b, err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	n.v = decimal.NewNullDecimal(d)
	return nil
}

// Present reports whether a numeric value was supplied.
func (n Number) Present() bool { return n.v.Valid }

// Null returns the value as an optional decimal.
func (n Number) Null() decimal.NullDecimal { return n.v }

// Or returns the value, or def when absent.
func (n Number) Or(def decimal.Decimal) decimal.Decimal {
	if !n.v.Valid {
		return def
	}
	return n.v.Decimal
}

// Scaled returns the value multiplied by factor, staying absent when absent.
func (n Number) Scaled(factor decimal.Decimal) decimal.NullDecimal {
	if !n.v.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(n.v.Decimal.Mul(factor))
}
