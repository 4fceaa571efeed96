package catalog

import "github.com/kailas-cloud/tripsearch/internal/domain/listing"

// Catalog tables.
const (
	TableProperties = "properties"
	TableTours      = "tours"
	TablePackages   = "tour_packages"
	TableTransport  = "transport_vehicles"
)

// schema describes how one category is laid out in the catalog store.
type schema struct {
	table string

	// Rows are visible to search only when publishKey equals publishValue.
	publishKey   string
	publishValue any

	title    string
	location string // empty when the category has no location column
	price    string

	// Category-specific filter columns; empty means the filter does not apply.
	bedrooms     string
	guests       string
	propertyType string
	tag          string
}

var schemas = map[listing.Category]schema{
	listing.Property: {
		table:        TableProperties,
		publishKey:   "status",
		publishValue: "approved",
		title:        listing.FieldTitle,
		location:     listing.FieldLocation,
		price:        listing.Property.PriceField(),
		bedrooms:     "bedrooms",
		guests:       "max_guests",
		propertyType: listing.FieldPropertyType,
	},
	listing.Tour: {
		table:        TableTours,
		publishKey:   "status",
		publishValue: "approved",
		title:        listing.FieldTitle,
		location:     listing.FieldLocation,
		price:        listing.Tour.PriceField(),
		tag:          listing.FieldCategory,
	},
	listing.Package: {
		table:        TablePackages,
		publishKey:   "status",
		publishValue: "approved",
		title:        listing.FieldName,
		location:     listing.FieldLocation,
		price:        listing.Package.PriceField(),
	},
	listing.Transport: {
		table:        TableTransport,
		publishKey:   "is_available",
		publishValue: true,
		title:        listing.FieldTitle,
		price:        listing.Transport.PriceField(),
		guests:       "capacity",
	},
}
