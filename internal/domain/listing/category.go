package listing

import (
	"fmt"

	"github.com/kailas-cloud/tripsearch/internal/domain"
)

// Category is the kind of listing a search result refers to.
type Category string

// Listing categories. The declaration order is the fixed merge order of search results.
const (
	Property  Category = "property"
	Tour      Category = "tour"
	Package   Category = "package"
	Transport Category = "transport"
)

// Categories returns all categories in merge order.
func Categories() []Category {
	return []Category{Property, Tour, Package, Transport}
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	return c == Property || c == Tour || c == Package || c == Transport
}

// PriceField returns the record field holding the category's headline price.
func (c Category) PriceField() string {
	switch c {
	case Property:
		return "price_per_night"
	case Tour:
		return "price_per_adult"
	case Package:
		return "price_per_person"
	case Transport:
		return "price_per_day"
	default:
		return ""
	}
}

// Scope selects which categories a search covers.
type Scope string

// Search scopes accepted from callers.
const (
	ScopeAll        Scope = "all"
	ScopeProperties Scope = "properties"
	ScopeTours      Scope = "tours"
	ScopePackages   Scope = "packages"
	ScopeTransport  Scope = "transport"
)

// ParseScope validates a scope string. Empty input means ScopeAll.
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return ScopeAll, nil
	}
	sc := Scope(s)
	switch sc {
	case ScopeAll, ScopeProperties, ScopeTours, ScopePackages, ScopeTransport:
		return sc, nil
	default:
		return "", fmt.Errorf("search type %q: %w", s, domain.ErrUnknownCategory)
	}
}

// Categories expands the scope into categories, in merge order.
func (s Scope) Categories() []Category {
	switch s {
	case ScopeProperties:
		return []Category{Property}
	case ScopeTours:
		return []Category{Tour}
	case ScopePackages:
		return []Category{Package}
	case ScopeTransport:
		return []Category{Transport}
	default:
		return Categories()
	}
}
