package models

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Keys of the derived fields kept in Meta.
const (
	MetaMonthlyCost           = "monthly_cost"
	MetaTotalCost             = "total_cost"
	MetaInterestRateEffective = "interest_rate_effective"
	MetaShouldAmortize        = "should_amortize"
)

// Meta holds values derived from a loan plus arbitrary caller annotations.
// It is serialized as one flat JSON object.
type Meta struct {
	MonthlyCost           *float64
	TotalCost             *float64
	InterestRateEffective *float64
	ShouldAmortize        *bool
	Extra                 map[string]any
}

// Has reports whether key is set, either as a derived field or in Extra.
func (m Meta) Has(key string) bool {
	switch key {
	case MetaMonthlyCost:
		return m.MonthlyCost != nil
	case MetaTotalCost:
		return m.TotalCost != nil
	case MetaInterestRateEffective:
		return m.InterestRateEffective != nil
	case MetaShouldAmortize:
		return m.ShouldAmortize != nil
	}
	_, ok := m.Extra[key]
	return ok
}

// IsEmpty reports whether no field is set.
func (m Meta) IsEmpty() bool {
	return m.MonthlyCost == nil && m.TotalCost == nil && m.InterestRateEffective == nil &&
		m.ShouldAmortize == nil && len(m.Extra) == 0
}

// Clone returns a copy of m sharing no pointers with it. Values in Extra
// are copied shallowly.
func (m Meta) Clone() Meta {
	var c Meta
	if m.MonthlyCost != nil {
		c.MonthlyCost = Float(*m.MonthlyCost)
	}
	if m.TotalCost != nil {
		c.TotalCost = Float(*m.TotalCost)
	}
	if m.InterestRateEffective != nil {
		c.InterestRateEffective = Float(*m.InterestRateEffective)
	}
	if m.ShouldAmortize != nil {
		c.ShouldAmortize = Bool(*m.ShouldAmortize)
	}
	if len(m.Extra) > 0 {
		c.Extra = maps.Clone(m.Extra)
	}
	return c
}

// MarshalJSON writes m as one flat object. A derived field that is set
// takes precedence over an Extra entry under the same key.
func (m Meta) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+4)
	maps.Copy(out, m.Extra)
	if m.MonthlyCost != nil {
		out[MetaMonthlyCost] = *m.MonthlyCost
	}
	if m.TotalCost != nil {
		out[MetaTotalCost] = *m.TotalCost
	}
	if m.InterestRateEffective != nil {
		out[MetaInterestRateEffective] = *m.InterestRateEffective
	}
	if m.ShouldAmortize != nil {
		out[MetaShouldAmortize] = *m.ShouldAmortize
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat object. The derived keys must hold values of
// their field type; every other key lands in Extra.
func (m *Meta) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = Meta{}
	for key, val := range raw {
		var err error
		switch key {
		case MetaMonthlyCost:
			m.MonthlyCost, err = floatField(key, val)
		case MetaTotalCost:
			m.TotalCost, err = floatField(key, val)
		case MetaInterestRateEffective:
			m.InterestRateEffective, err = floatField(key, val)
		case MetaShouldAmortize:
			flag, ok := val.(bool)
			if !ok {
				return fmt.Errorf("meta field %s: expected bool, got %T", key, val)
			}
			m.ShouldAmortize = Bool(flag)
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[key] = val
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func floatField(key string, val any) (*float64, error) {
	f, ok := val.(float64)
	if !ok {
		return nil, fmt.Errorf("meta field %s: expected number, got %T", key, val)
	}
	return Float(f), nil
}
