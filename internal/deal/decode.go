package deal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON array of deal records. A payload that is not an array
// of record-shaped objects is a caller error and is reported as such; missing
// or null fields inside a record are not (they degrade during analysis).
func Decode(r io.Reader) ([]Record, error) {
	var deals []Record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&deals); err != nil {
		return nil, fmt.Errorf("deal: input is not a JSON array of deal records: %w", err)
	}
	return deals, nil
}

// LoadFile reads and decodes a deals JSON file.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("deal: open %s: %w", path, err)
	}
	defer f.Close()

	deals, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("deal: %s: %w", path, err)
	}
	return deals, nil
}
