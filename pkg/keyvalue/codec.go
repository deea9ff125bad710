package keyvalue

import (
	"encoding/json"
	"fmt"
)

const envelopeVersion = 1

// envelope wraps every stored record with a schema version. The browser
// storage this replaces carried none, which made corrupt records
// indistinguishable from stale ones.
type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

func encodeRecord(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	wrapped, err := json.Marshal(envelope{Version: envelopeVersion, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return wrapped, nil
}

func decodeRecord(raw []byte, dest any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Version != envelopeVersion {
		return fmt.Errorf("unsupported record version %d", env.Version)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("empty record payload")
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return nil
}
