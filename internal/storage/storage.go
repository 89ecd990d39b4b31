package storage

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/yourusername/ledgerbook/pkg/types"
)

const (
	// Database keys
	blockPrefix = "block_"
	tipKey      = "chain_tip"
	heightKey   = "chain_height"
	pendingKey  = "pending_txs"
)

// Store is the LevelDB persistence layer for the chain. Blocks are keyed by
// their hex hash; the tip key points at the latest one.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) a store at the given path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", path)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutBlock saves a sealed block under its hash.
func (s *Store) PutBlock(b *types.Block) error {
	data, err := EncodeBlock(b)
	if err != nil {
		return err
	}
	key := []byte(blockPrefix + b.Header.Hash)
	return errors.Wrap(s.db.Put(key, data, nil), "put block")
}

// GetBlock retrieves a block by its hex hash.
func (s *Store) GetBlock(hash string) (*types.Block, error) {
	data, err := s.db.Get([]byte(blockPrefix+hash), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "block %s", hash)
	}
	return DecodeBlock(data)
}

// PutChainTip records the latest block hash.
func (s *Store) PutChainTip(hash string) error {
	return s.db.Put([]byte(tipKey), []byte(hash), nil)
}

// ChainTip returns the latest block hash, or leveldb.ErrNotFound when the
// store holds no chain yet.
func (s *Store) ChainTip() (string, error) {
	data, err := s.db.Get([]byte(tipKey), nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HasChain reports whether the store already holds a chain tip.
func (s *Store) HasChain() bool {
	ok, _ := s.db.Has([]byte(tipKey), nil)
	return ok
}

// PutChainHeight records the number of blocks in the chain.
func (s *Store) PutChainHeight(height int) error {
	return s.db.Put([]byte(heightKey), []byte(strconv.Itoa(height)), nil)
}

// ChainHeight returns the recorded chain height.
func (s *Store) ChainHeight() (int, error) {
	data, err := s.db.Get([]byte(heightKey), nil)
	if err != nil {
		return 0, err
	}
	height, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRecord, "invalid height %q", data)
	}
	return height, nil
}

// LoadChain loads the whole chain in order by walking backwards from the
// tip via previous_hash until the genesis sentinel. Returns nil when the
// store holds no chain.
func (s *Store) LoadChain() ([]*types.Block, error) {
	hash, err := s.ChainTip()
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "chain tip")
	}

	var blocks []*types.Block
	for {
		b, err := s.GetBlock(hash)
		if err != nil {
			return nil, err
		}
		blocks = append([]*types.Block{b}, blocks...)

		if b.Header.PrevHash == types.GenesisPrevHash {
			break
		}
		hash = b.Header.PrevHash
	}

	return blocks, nil
}

// PutPending saves the pending transaction buffer so it survives between
// process invocations.
func (s *Store) PutPending(txs []types.TransactionRecord) error {
	records := make([]txRecord, len(txs))
	for i, tx := range txs {
		records[i] = txRecord{Sender: tx.Sender, Receiver: tx.Receiver, Amount: tx.Amount}
	}
	data, err := encodePending(records)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(pendingKey), data, nil)
}

// Pending returns the saved pending transaction buffer, or nil when none
// was saved.
func (s *Store) Pending() ([]types.TransactionRecord, error) {
	data, err := s.db.Get([]byte(pendingKey), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "pending transactions")
	}
	return decodePending(data)
}

// Reset removes all data from the store.
func (s *Store) Reset() error {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(iter.Key())
	}

	return s.db.Write(batch, nil)
}
