package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StdJSONCodec decodes with UseNumber so integer claims keep their precision.
type StdJSONCodec struct{}

func (StdJSONCodec) Encode(value any) ([]byte, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("core: encode json payload: %w", err)
	}
	return encoded, nil
}

func (StdJSONCodec) Decode(payload []byte, target any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return fmt.Errorf("core: json payload is empty")
	}
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("core: decode json payload: %w", err)
	}
	if decoder.More() {
		return fmt.Errorf("core: decode json payload: unexpected trailing data")
	}
	return nil
}

