package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDiscover_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", "{}")
	writeFile(t, dir, "a.json", "{}")
	writeFile(t, dir, "notes.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	files, err := Discover(dir, ".json")
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, files)
}

func TestDiscover_InvalidDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover(filepath.Join(dir, "missing"), ".json")
	assert.ErrorIs(t, err, ErrInvalidInputDirectory)

	file := writeFile(t, dir, "file.json", "{}")
	_, err = Discover(file, ".json")
	assert.ErrorIs(t, err, ErrInvalidInputDirectory)
}

func TestDiscover_Empty(t *testing.T) {
	files, err := Discover(t.TempDir(), ".json")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFlatten_OneRecordPerFlight(t *testing.T) {
	data := `{"flights_data":[
		{"metadata":{"source":"x"},"search_parameters":{"destination_iota":"JFK","origin_iota":"BOS"},"flights":[{"n":1},{"n":2}]},
		{"search_parameters":{"destination_iota":"LAX"},"flights":[{"n":3}]}
	]}`

	res, err := Flatten("f.json", []byte(data))
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	assert.Empty(t, res.Skipped)

	assert.Equal(t, "JFK", res.Records[0].Destination)
	assert.Equal(t, "JFK", res.Records[1].Destination)
	assert.Equal(t, "LAX", res.Records[2].Destination)
	assert.Equal(t, "x", res.Records[0].Record.Metadata["source"])
	assert.Equal(t, "BOS", res.Records[1].Record.SearchParameters["origin_iota"])

	// absent metadata defaults to an empty mapping
	assert.NotNil(t, res.Records[2].Record.Metadata)
	assert.Empty(t, res.Records[2].Record.Metadata)
}

func TestFlatten_SkipsEntriesWithoutDestination(t *testing.T) {
	data := `{"flights_data":[
		{"search_parameters":{"origin_iota":"BOS"},"flights":[{"n":1}]},
		{"search_parameters":{"destination_iota":""},"flights":[{"n":2}]},
		{"flights":[{"n":3}]},
		{"search_parameters":{"destination_iota":42},"flights":[{"n":4}]},
		{"search_parameters":{"destination_iota":"../x"},"flights":[{"n":5}]},
		{"search_parameters":{"destination_iota":"SFO"},"flights":[{"n":6}]}
	]}`

	res, err := Flatten("f.json", []byte(data))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "SFO", res.Records[0].Destination)

	require.Len(t, res.Skipped, 5)
	assert.ErrorIs(t, res.Skipped[0], ErrMissingDestination)
	assert.ErrorIs(t, res.Skipped[1], ErrMissingDestination)
	assert.ErrorIs(t, res.Skipped[2], ErrMissingDestination)
	assert.ErrorIs(t, res.Skipped[3], ErrInvalidDestination)
	assert.ErrorIs(t, res.Skipped[4], ErrInvalidDestination)
	assert.Equal(t, 3, res.Skipped[3].Index)
}

func TestFlatten_EntryWithoutFlights(t *testing.T) {
	res, err := Flatten("f.json", []byte(`{"flights_data":[{"search_parameters":{"destination_iota":"JFK"}}]}`))
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.Skipped)
}

func TestFlatten_FileErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind error
	}{
		{"malformed", `{"flights_data": [`, ErrMalformedInput},
		{"empty", ``, ErrMalformedInput},
		{"invalid utf8", "{\"flights_data\":[{\"search_parameters\":{\"destination_iota\":\"LAX\"},\"flights\":[{\"n\":\"\xff\"}]}]}", ErrMalformedInput},
		{"trailing bytes", `{"flights_data": []} xyz`, ErrMalformedInput},
		{"missing field", `{"other": []}`, ErrMissingField},
		{"null field", `{"flights_data": null}`, ErrMissingField},
		{"wrong shape", `{"flights_data": [{"metadata": "nope"}]}`, ErrProcessing},
		{"top level array", `[1, 2]`, ErrProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Flatten("bad.json", []byte(tt.data))
			assert.Nil(t, res)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var fe *FileError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "bad.json", fe.Path)
		})
	}
}

func TestFlattenFile_Unreadable(t *testing.T) {
	_, err := FlattenFile(filepath.Join(t.TempDir(), "gone.json"))
	assert.ErrorIs(t, err, ErrProcessing)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
