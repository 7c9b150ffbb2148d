// Package catalog holds the static reference tables shown next to an estimate:
// the unit costs the contribution is compared against and the donation directory.
package catalog

import (
	_ "embed"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"sigs.k8s.io/yaml"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Item is something with a fixed unit cost.
type Item struct {
	Name         string  `json:"name" validate:"required"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Cost         float64 `json:"cost" validate:"gt=0"`
}

// Organization is an entry of the donation directory.
type Organization struct {
	Name    string `json:"name" validate:"required"`
	Website string `json:"website" validate:"required,http_url"`
}

type Catalog struct {
	Items         []Item         `json:"items" validate:"dive"`
	Organizations []Organization `json:"organizations" validate:"dive"`
}

// Purchase is how many units of an Item an amount of money buys.
type Purchase struct {
	Item  Item
	Units float64
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(errors.Wrap(err, "built-in catalog"))
	}
	return c
}

// Parse decodes and validates a YAML (or JSON) catalog. Surrounding whitespace in
// names is dropped.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, errors.Wrap(err, "decoding catalog")
	}

	c.Items = lo.Map(c.Items, func(i Item, _ int) Item {
		i.Name = strings.TrimSpace(i.Name)
		i.Manufacturer = strings.TrimSpace(i.Manufacturer)
		return i
	})
	c.Organizations = lo.Map(c.Organizations, func(o Organization, _ int) Organization {
		o.Name = strings.TrimSpace(o.Name)
		o.Website = strings.TrimSpace(o.Website)
		return o
	})

	if err := validate.Struct(c); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	return &c, nil
}

// Load reads a catalog file. See Parse.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading catalog %s", path)
	}
	return c, nil
}

// Purchases returns how many units of each item amount buys, in catalog order.
// Items without a positive cost buy nothing.
func (c *Catalog) Purchases(amount float64) []Purchase {
	return lo.Map(c.Items, func(i Item, _ int) Purchase {
		units := 0.0
		if i.Cost > 0 {
			units = amount / i.Cost
		}
		return Purchase{Item: i, Units: units}
	})
}
