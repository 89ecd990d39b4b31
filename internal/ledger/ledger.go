package ledger

import (
	"fmt"
	"log/slog"

	"github.com/yourusername/ledgerbook/internal/block"
	"github.com/yourusername/ledgerbook/internal/pow"
	"github.com/yourusername/ledgerbook/internal/storage"
	"github.com/yourusername/ledgerbook/pkg/types"
)

// Ledger owns an ordered chain of sealed blocks and a buffer of pending
// transactions awaiting inclusion. It is not safe for concurrent use;
// callers with concurrent appenders must serialize AddTransaction and
// AddBlock externally.
type Ledger struct {
	blocks  []*types.Block
	pending []types.TransactionRecord
	target  pow.Target
	store   *storage.Store
	logger  *slog.Logger
}

// Option configures a Ledger before its chain is initialized.
type Option func(*Ledger)

// WithTarget sets the difficulty target used for sealing.
func WithTarget(t pow.Target) Option {
	return func(l *Ledger) { l.target = t }
}

// WithStore attaches a persistent store. Sealed blocks and the pending
// buffer are written through to it.
func WithStore(s *storage.Store) Option {
	return func(l *Ledger) { l.store = s }
}

// WithLogger sets the logger used for block-sealed events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New creates a ledger. When a store is attached and already holds a chain,
// that chain and any saved pending buffer are loaded; otherwise a genesis
// block (no transactions, sentinel previous-hash) is built, sealed and
// appended as index 0.
func New(opts ...Option) (*Ledger, error) {
	l := &Ledger{
		target: pow.DefaultTarget(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.store != nil {
		blocks, err := l.store.LoadChain()
		if err != nil {
			return nil, fmt.Errorf("load chain: %w", err)
		}
		if len(blocks) > 0 {
			pending, err := l.store.Pending()
			if err != nil {
				return nil, fmt.Errorf("load pending: %w", err)
			}
			l.blocks = blocks
			l.pending = pending
			return l, nil
		}
	}

	genesis := block.New(nil, types.GenesisPrevHash)
	pow.Seal(genesis, l.target)
	l.blocks = append(l.blocks, genesis)

	if err := l.persist(genesis); err != nil {
		return nil, err
	}

	return l, nil
}

// FromBlocks creates a ledger over an already-built chain, typically one
// decoded from a chain file. The blocks are trusted as stored; callers run
// VerifyChain and VerifyAllTransactions to detect tampering.
func FromBlocks(blocks []*types.Block, opts ...Option) (*Ledger, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("chain must contain at least a genesis block")
	}

	l := &Ledger{
		blocks: append([]*types.Block(nil), blocks...),
		target: pow.DefaultTarget(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// AddTransaction appends a transfer record to the pending buffer. The
// record is accepted at face value; balance and authorization checks are
// out of scope.
func (l *Ledger) AddTransaction(sender, receiver string, amount int64) error {
	l.pending = append(l.pending, types.TransactionRecord{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	})

	if l.store != nil {
		if err := l.store.PutPending(l.pending); err != nil {
			return fmt.Errorf("persist pending: %w", err)
		}
	}
	return nil
}

// AddBlock snapshots the pending buffer into a new block linked to the
// current tip, seals it, appends it and clears the buffer.
func (l *Ledger) AddBlock() (*types.Block, error) {
	if len(l.blocks) == 0 {
		return nil, fmt.Errorf("ledger has no genesis block")
	}

	prev := l.blocks[len(l.blocks)-1]
	b := block.New(l.pending, prev.Header.Hash)
	pow.Seal(b, l.target)

	l.blocks = append(l.blocks, b)
	l.pending = nil

	if err := l.persist(b); err != nil {
		return nil, err
	}

	l.logger.Info("block sealed",
		"height", len(l.blocks)-1,
		"nonce", b.Header.Nonce,
		"hash", b.Header.Hash,
		"transactions", len(b.Transactions))

	return b, nil
}

// persist writes a newly appended block and the chain metadata through to
// the store, if one is attached.
func (l *Ledger) persist(b *types.Block) error {
	if l.store == nil {
		return nil
	}

	if err := l.store.PutBlock(b); err != nil {
		return err
	}
	if err := l.store.PutChainTip(b.Header.Hash); err != nil {
		return err
	}
	if err := l.store.PutChainHeight(len(l.blocks)); err != nil {
		return err
	}
	return l.store.PutPending(l.pending)
}

// GetBalance folds every transaction in chain order into the net balance of
// person: amounts are subtracted when sent and added when received. An
// uninvolved person nets 0.
func (l *Ledger) GetBalance(person string) int64 {
	var balance int64
	for _, b := range l.blocks {
		for _, tx := range b.Transactions {
			if tx.Sender == person {
				balance -= tx.Amount
			}
			if tx.Receiver == person {
				balance += tx.Amount
			}
		}
	}
	return balance
}

// GetMinMaxBalance runs the same fold as GetBalance while tracking the
// minimum and maximum cumulative balance observed after each transaction.
// Both extremes are seeded at 0 before any transaction is applied.
func (l *Ledger) GetMinMaxBalance(person string) (int64, int64) {
	var balance, minBalance, maxBalance int64
	for _, b := range l.blocks {
		for _, tx := range b.Transactions {
			if tx.Sender == person {
				balance -= tx.Amount
			}
			if tx.Receiver == person {
				balance += tx.Amount
			}
			minBalance = min(minBalance, balance)
			maxBalance = max(maxBalance, balance)
		}
	}
	return minBalance, maxBalance
}

// GetPositiveBalanceUsers folds all transactions into per-participant net
// balances and returns the participants holding a strictly positive one.
// The order of the result is unspecified.
func (l *Ledger) GetPositiveBalanceUsers() []string {
	balances := make(map[string]int64)
	for _, b := range l.blocks {
		for _, tx := range b.Transactions {
			balances[tx.Sender] -= tx.Amount
			balances[tx.Receiver] += tx.Amount
		}
	}

	var users []string
	for user, balance := range balances {
		if balance > 0 {
			users = append(users, user)
		}
	}
	return users
}

// VerifyChain checks every block from index 1 upward: the stored hash must
// equal a fresh recomputation, and the previous-hash must equal the
// predecessor's stored hash. The genesis block has no predecessor and its
// own header hash is not checked here; its commitment is still covered by
// VerifyAllTransactions.
func (l *Ledger) VerifyChain() bool {
	for i := 1; i < len(l.blocks); i++ {
		current := l.blocks[i]
		previous := l.blocks[i-1]

		if current.Header.Hash != block.Recompute(current) {
			return false
		}
		if current.Header.PrevHash != previous.Header.Hash {
			return false
		}
	}
	return true
}

// VerifyAllTransactions recomputes every block's merkle commitment,
// including the genesis block's, against its stored root.
func (l *Ledger) VerifyAllTransactions() bool {
	for _, b := range l.blocks {
		if !block.VerifyCommitment(b) {
			return false
		}
	}
	return true
}

// Height returns the number of blocks in the chain.
func (l *Ledger) Height() int {
	return len(l.blocks)
}

// LatestBlock returns the most recent block.
func (l *Ledger) LatestBlock() *types.Block {
	return l.blocks[len(l.blocks)-1]
}

// Block returns the block at the given index.
func (l *Ledger) Block(index int) (*types.Block, error) {
	if index < 0 || index >= len(l.blocks) {
		return nil, fmt.Errorf("block index %d out of range", index)
	}
	return l.blocks[index], nil
}

// BlockByHash finds a block by its hex hash.
func (l *Ledger) BlockByHash(hash string) (*types.Block, error) {
	for _, b := range l.blocks {
		if b.Header.Hash == hash {
			return b, nil
		}
	}
	return nil, fmt.Errorf("block %s not found", hash)
}

// Blocks returns the chain in order.
func (l *Ledger) Blocks() []*types.Block {
	return append([]*types.Block(nil), l.blocks...)
}

// Pending returns a copy of the pending transaction buffer.
func (l *Ledger) Pending() []types.TransactionRecord {
	return append([]types.TransactionRecord(nil), l.pending...)
}
