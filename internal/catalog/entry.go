// Package catalog parses controller documents into validated entries and
// holds them in an immutable, identity-keyed catalog.
package catalog

import (
	"fmt"
	"strings"
)

// ButtonType is the kind of buttons a controller ships with.
type ButtonType string

const (
	ButtonDigital ButtonType = "digital"
	ButtonAnalog  ButtonType = "analog"
)

// Valid reports whether b is one of the known button types.
func (b ButtonType) Valid() bool {
	return b == ButtonDigital || b == ButtonAnalog
}

// Identity is the composite key of a controller: maker slug plus model slug.
type Identity struct {
	Maker string `json:"maker"`
	Model string `json:"model"`
}

// String renders the identity as "maker/model".
func (id Identity) String() string {
	return id.Maker + "/" + id.Model
}

// IsZero reports whether either half of the identity is missing.
func (id Identity) IsZero() bool {
	return id.Maker == "" || id.Model == ""
}

// ParseIdentity parses a "maker/model" string.
func ParseIdentity(s string) (Identity, error) {
	maker, model, ok := strings.Cut(strings.Trim(strings.TrimSpace(s), "/"), "/")
	if !ok || maker == "" || model == "" || strings.Contains(model, "/") {
		return Identity{}, fmt.Errorf("invalid controller id %q (want maker/model)", s)
	}
	return Identity{Maker: maker, Model: model}, nil
}

// Dimensions is the footprint of a controller in millimetres.
type Dimensions struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Entry is one controller's specification.
type Entry struct {
	ID            Identity    `json:"id"`
	Name          string      `json:"name"`
	MakerName     string      `json:"maker_name"`
	ButtonType    ButtonType  `json:"button_type"`
	SwitchTypes   []string    `json:"switch_types"`
	ReleaseYear   int         `json:"release_year"`
	PriceUSD      *float64    `json:"price_usd,omitempty"`
	WeightGrams   *int        `json:"weight_grams,omitempty"`
	DimensionsMm  *Dimensions `json:"dimensions_mm,omitempty"`
	CurrentlySold bool        `json:"currently_sold"`
	Link          string      `json:"link,omitempty"`
}

// Clone returns a deep copy so callers cannot reach shared slices or pointers.
func (e Entry) Clone() Entry {
	out := e
	if e.SwitchTypes != nil {
		out.SwitchTypes = append([]string(nil), e.SwitchTypes...)
	}
	if e.PriceUSD != nil {
		p := *e.PriceUSD
		out.PriceUSD = &p
	}
	if e.WeightGrams != nil {
		w := *e.WeightGrams
		out.WeightGrams = &w
	}
	if e.DimensionsMm != nil {
		d := *e.DimensionsMm
		out.DimensionsMm = &d
	}
	return out
}
