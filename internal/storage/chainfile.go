package storage

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/yourusername/ledgerbook/pkg/types"
)

// ExportFile writes the whole chain to path as a JSON array of stored block
// records, oldest first.
func ExportFile(path string, blocks []*types.Block) error {
	records := make([]json.RawMessage, len(blocks))
	for i, b := range blocks {
		data, err := EncodeBlock(b)
		if err != nil {
			return err
		}
		records[i] = data
	}

	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "encode chain")
	}

	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}

// ImportFile reads a chain previously written by ExportFile. Every record
// must decode cleanly; a malformed record fails the whole import with
// ErrMalformedRecord.
func ImportFile(path string) ([]*types.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "invalid chain file: %v", err)
	}

	blocks := make([]*types.Block, len(records))
	for i, record := range records {
		b, err := DecodeBlock(record)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		blocks[i] = b
	}

	return blocks, nil
}
