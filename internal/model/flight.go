package model

import (
	jsoniter "github.com/json-iterator/go"
)

// JSON is the codec shared by every stage. Map keys are always emitted in
// sorted order and numbers are kept as json.Number, so encoding a decoded
// value is stable regardless of the key order in the source document.
var JSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// DestinationField is the search parameter holding the destination airport code.
const DestinationField = "destination_iota"

// SearchFile is the top level of an input document.
type SearchFile struct {
	FlightsData *[]SearchEntry `json:"flights_data"`
}

// SearchEntry is one flight search: its metadata, parameters and the flights found.
type SearchEntry struct {
	Metadata         map[string]interface{} `json:"metadata"`
	SearchParameters map[string]interface{} `json:"search_parameters"`
	Flights          []interface{}          `json:"flights"`
}

// Normalize replaces absent mappings with empty ones.
func (e *SearchEntry) Normalize() {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	if e.SearchParameters == nil {
		e.SearchParameters = map[string]interface{}{}
	}
}

// Destination returns the raw destination value and whether it is present.
func (e *SearchEntry) Destination() (interface{}, bool) {
	v, ok := e.SearchParameters[DestinationField]
	return v, ok
}

// FlattenedRecord pairs a single flight with the search it came from.
type FlattenedRecord struct {
	Metadata         map[string]interface{} `json:"metadata"`
	SearchParameters map[string]interface{} `json:"search_parameters"`
	Flight           interface{}            `json:"flight"`
}

// Canonical returns the fingerprint encoding of the record: map keys are
// sorted and numbers normalized, so records that decode to the same values
// encode identically. The record itself is left untouched.
func (r *FlattenedRecord) Canonical() ([]byte, error) {
	return JSON.Marshal(FlattenedRecord{
		Metadata:         canonicalValue(r.Metadata).(map[string]interface{}),
		SearchParameters: canonicalValue(r.SearchParameters).(map[string]interface{}),
		Flight:           canonicalValue(r.Flight),
	})
}

// ArrivalRecord is a flattened record tagged with its destination code.
type ArrivalRecord struct {
	Destination string
	Record      FlattenedRecord
}

// ArrivalFile is the document written for one destination.
type ArrivalFile struct {
	FlightsData []FlattenedRecord `json:"flights_data"`
}
