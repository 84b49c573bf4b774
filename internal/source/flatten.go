package source

import (
	"fmt"
	"os"

	"flight-arrival-regrouper/internal/model"
	"flight-arrival-regrouper/pkg/utils"
)

// FileResult holds the records produced from one input file together with
// the entries that had to be skipped.
type FileResult struct {
	Path    string
	Records []model.ArrivalRecord
	Skipped []*EntryError
}

// FlattenFile reads path and flattens its search entries into per-flight records.
func FlattenFile(path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Kind: ErrProcessing, Err: err}
	}

	return Flatten(path, data)
}

// Flatten decodes data and emits one record per flight. A file either
// contributes all of its valid entries or nothing.
func Flatten(path string, data []byte) (*FileResult, error) {
	if !model.ValidDocument(data) {
		return nil, &FileError{Path: path, Kind: ErrMalformedInput}
	}

	var doc model.SearchFile
	if err := model.JSON.Unmarshal(data, &doc); err != nil {
		return nil, &FileError{Path: path, Kind: ErrProcessing, Err: err}
	}

	if doc.FlightsData == nil {
		return nil, &FileError{Path: path, Kind: ErrMissingField}
	}

	result := &FileResult{Path: path}
	for i := range *doc.FlightsData {
		entry := &(*doc.FlightsData)[i]
		entry.Normalize()

		code, err := destinationCode(entry)
		if err != nil {
			result.Skipped = append(result.Skipped, &EntryError{Path: path, Index: i, Kind: err})
			continue
		}

		for _, flight := range entry.Flights {
			result.Records = append(result.Records, model.ArrivalRecord{
				Destination: code,
				Record: model.FlattenedRecord{
					Metadata:         entry.Metadata,
					SearchParameters: entry.SearchParameters,
					Flight:           flight,
				},
			})
		}
	}

	return result, nil
}

func destinationCode(entry *model.SearchEntry) (string, error) {
	raw, ok := entry.Destination()
	if !ok || raw == nil {
		return "", ErrMissingDestination
	}

	code, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrInvalidDestination, raw)
	}
	if code == "" {
		return "", ErrMissingDestination
	}
	if !utils.IsSafeFileComponent(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDestination, code)
	}

	return code, nil
}
