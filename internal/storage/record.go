package storage

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/yourusername/ledgerbook/internal/block"
	"github.com/yourusername/ledgerbook/pkg/types"
)

// ErrMalformedRecord marks a stored block record that cannot be decoded.
// It is a format error, distinct from the boolean integrity verdicts the
// ledger reports for tampered chains.
var ErrMalformedRecord = errors.New("malformed block record")

// blockRecord is the stored JSON form of a sealed block. It carries every
// field the hash derivations depend on, with the same canonicalization, so
// a decoded chain verifies cleanly.
type blockRecord struct {
	Timestamp    string     `json:"timestamp"`
	Transactions []txRecord `json:"transactions"`
	PrevHash     string     `json:"previous_hash"`
	Nonce        uint64     `json:"nonce"`
	Hash         string     `json:"hash"`
	MerkleRoot   string     `json:"merkle_root"`
}

type txRecord struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   int64  `json:"amount"`
}

// rawBlockRecord mirrors blockRecord with pointer fields so that decoding
// can tell a missing field apart from a zero value.
type rawBlockRecord struct {
	Timestamp    *string        `json:"timestamp"`
	Transactions *[]rawTxRecord `json:"transactions"`
	PrevHash     *string        `json:"previous_hash"`
	Nonce        *uint64        `json:"nonce"`
	Hash         *string        `json:"hash"`
	MerkleRoot   *string        `json:"merkle_root"`
}

type rawTxRecord struct {
	Sender   *string `json:"sender"`
	Receiver *string `json:"receiver"`
	Amount   *int64  `json:"amount"`
}

// EncodeBlock serializes a sealed block to its stored JSON record.
func EncodeBlock(b *types.Block) ([]byte, error) {
	record := blockRecord{
		Timestamp:    b.Header.CanonicalTimestamp(),
		Transactions: make([]txRecord, len(b.Transactions)),
		PrevHash:     b.Header.PrevHash,
		Nonce:        b.Header.Nonce,
		Hash:         b.Header.Hash,
		MerkleRoot:   b.Header.MerkleRoot,
	}
	for i, tx := range b.Transactions {
		record.Transactions[i] = txRecord{
			Sender:   tx.Sender,
			Receiver: tx.Receiver,
			Amount:   tx.Amount,
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "encode block record")
	}
	return data, nil
}

// DecodeBlock rebuilds a sealed block from its stored JSON record. Missing
// or unparseable fields fail with ErrMalformedRecord; nothing is silently
// defaulted. The decoded block trusts its stored nonce and hash, pending
// chain verification by the caller.
func DecodeBlock(data []byte) (*types.Block, error) {
	var raw rawBlockRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "invalid json: %v", err)
	}

	switch {
	case raw.Timestamp == nil:
		return nil, errors.Wrap(ErrMalformedRecord, "missing field timestamp")
	case raw.Transactions == nil:
		return nil, errors.Wrap(ErrMalformedRecord, "missing field transactions")
	case raw.PrevHash == nil:
		return nil, errors.Wrap(ErrMalformedRecord, "missing field previous_hash")
	case raw.Nonce == nil:
		return nil, errors.Wrap(ErrMalformedRecord, "missing field nonce")
	case raw.Hash == nil:
		return nil, errors.Wrap(ErrMalformedRecord, "missing field hash")
	case raw.MerkleRoot == nil:
		return nil, errors.Wrap(ErrMalformedRecord, "missing field merkle_root")
	}

	ts, err := time.Parse(time.RFC3339Nano, *raw.Timestamp)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "invalid timestamp %q: %v", *raw.Timestamp, err)
	}

	txs := make([]types.TransactionRecord, len(*raw.Transactions))
	for i, tx := range *raw.Transactions {
		if tx.Sender == nil || tx.Receiver == nil || tx.Amount == nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "transaction %d missing fields", i)
		}
		txs[i] = types.TransactionRecord{
			Sender:   *tx.Sender,
			Receiver: *tx.Receiver,
			Amount:   *tx.Amount,
		}
	}

	return block.Restore(ts, txs, *raw.PrevHash, *raw.Nonce, *raw.Hash, *raw.MerkleRoot), nil
}

func encodePending(records []txRecord) ([]byte, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, errors.Wrap(err, "encode pending transactions")
	}
	return data, nil
}

func decodePending(data []byte) ([]types.TransactionRecord, error) {
	var raw []rawTxRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "invalid pending buffer: %v", err)
	}

	txs := make([]types.TransactionRecord, len(raw))
	for i, tx := range raw {
		if tx.Sender == nil || tx.Receiver == nil || tx.Amount == nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "pending transaction %d missing fields", i)
		}
		txs[i] = types.TransactionRecord{
			Sender:   *tx.Sender,
			Receiver: *tx.Receiver,
			Amount:   *tx.Amount,
		}
	}
	return txs, nil
}
