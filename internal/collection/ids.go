package collection

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

// Bounds of the exporter id, Postman uses an 8 digit number.
const (
	minExporterID = 10000000
	maxExporterID = 99999999
)

// IDSource supplies the identifiers written into a rendered collection's info block.
type IDSource interface {
	// CollectionID returns the _postman_id.
	CollectionID() string

	// ExporterID returns the _exporter_id.
	ExporterID() string
}

// RandomIDs is the default [IDSource], every call returns a fresh identifier.
type RandomIDs struct{}

// CollectionID returns a random (version 4) UUID.
func (RandomIDs) CollectionID() string {
	return uuid.NewString()
}

// ExporterID returns a random 8 digit number.
func (RandomIDs) ExporterID() string {
	return strconv.Itoa(minExporterID + rand.IntN(maxExporterID-minExporterID+1)) //nolint:gosec // Not security sensitive
}

// FixedIDs is an [IDSource] that always returns the same identifiers.
type FixedIDs struct {
	Collection string
	Exporter   string
}

// CollectionID returns f.Collection.
func (f FixedIDs) CollectionID() string {
	return f.Collection
}

// ExporterID returns f.Exporter.
func (f FixedIDs) ExporterID() string {
	return f.Exporter
}
