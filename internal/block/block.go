package block

import (
	"time"

	"github.com/yourusername/ledgerbook/internal/crypto"
	"github.com/yourusername/ledgerbook/internal/merkle"
	"github.com/yourusername/ledgerbook/pkg/types"
)

// New constructs a block over the given transactions, linked to prevHash.
// The merkle commitment and the initial hash are computed immediately; the
// nonce starts at zero and only the sealer advances it.
func New(txs []types.TransactionRecord, prevHash string) *types.Block {
	b := &types.Block{
		Header: types.BlockHeader{
			Timestamp: time.Now(),
			PrevHash:  prevHash,
		},
		Transactions: append([]types.TransactionRecord(nil), txs...),
	}

	b.Header.MerkleRoot = merkle.Root(types.CanonicalTransactions(b.Transactions))
	b.Header.Hash = Recompute(b)

	return b
}

// Recompute derives the block hash from the current field values without
// storing it. The sealer stores the result after each nonce step;
// verification compares it against the cached header hash.
func Recompute(b *types.Block) string {
	return crypto.HashHex(b.HashPayload())
}

// VerifyCommitment recomputes the merkle root from the stored transaction
// list and compares it to the stored commitment. It detects transaction
// tampering independently of the header hash.
func VerifyCommitment(b *types.Block) bool {
	return merkle.Root(types.CanonicalTransactions(b.Transactions)) == b.Header.MerkleRoot
}

// Restore rebuilds an already-sealed block from stored fields. The stored
// nonce, hash and merkle root are trusted as-is; callers run chain
// verification on the result to detect tampering.
func Restore(ts time.Time, txs []types.TransactionRecord, prevHash string, nonce uint64, hash, merkleRoot string) *types.Block {
	return &types.Block{
		Header: types.BlockHeader{
			Timestamp:  ts,
			PrevHash:   prevHash,
			Nonce:      nonce,
			MerkleRoot: merkleRoot,
			Hash:       hash,
		},
		Transactions: append([]types.TransactionRecord(nil), txs...),
	}
}
