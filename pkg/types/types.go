package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GenesisPrevHash is the sentinel previous-hash of the genesis block.
const GenesisPrevHash = "0"

// TransactionRecord is a single transfer between two named parties.
// Records are accepted at face value; there is no balance or
// authorization check.
type TransactionRecord struct {
	Sender   string
	Receiver string
	Amount   int64
}

// Canonical returns the fixed string form of the record. The same form is
// used by the merkle commitment and by the block hash preimage, so its
// field order and formatting must never change.
func (tx TransactionRecord) Canonical() string {
	return fmt.Sprintf(`{"sender":%q,"receiver":%q,"amount":%d}`, tx.Sender, tx.Receiver, tx.Amount)
}

// CanonicalTransactions returns the canonical form of each record, in order.
func CanonicalTransactions(txs []TransactionRecord) []string {
	records := make([]string, len(txs))
	for i, tx := range txs {
		records[i] = tx.Canonical()
	}
	return records
}

// BlockHeader contains the block metadata
type BlockHeader struct {
	Timestamp  time.Time // Block creation time
	PrevHash   string    // Previous block hash, GenesisPrevHash for genesis
	Nonce      uint64    // Nonce for PoW
	MerkleRoot string    // Commitment over the transaction list
	Hash       string    // Block hash (cached, recomputable)
}

// CanonicalTimestamp is the timestamp form that participates in hashing and
// in the stored record. RFC3339Nano round-trips exactly through Parse/Format.
func (h *BlockHeader) CanonicalTimestamp() string {
	return h.Timestamp.Format(time.RFC3339Nano)
}

// Block represents a complete block with header and transactions
type Block struct {
	Header       BlockHeader
	Transactions []TransactionRecord
}

// HashPayload assembles the hash preimage from the current field values:
// timestamp, transactions, previous hash, nonce and merkle root, each in
// canonical form.
func (b *Block) HashPayload() string {
	var sb strings.Builder
	sb.WriteString(b.Header.CanonicalTimestamp())
	for _, tx := range b.Transactions {
		sb.WriteString(tx.Canonical())
	}
	sb.WriteString(b.Header.PrevHash)
	sb.WriteString(strconv.FormatUint(b.Header.Nonce, 10))
	sb.WriteString(b.Header.MerkleRoot)
	return sb.String()
}
