package store

import "github.com/iov-one/trinity/errors"

// EmptyKVStore holds nothing and drops every write. It is the base of
// MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set([]byte, []byte) error   { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }
func (e EmptyKVStore) NewBatch() Batch          { return NewOpBatch(e) }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// SliceIterator iterates over models in slice order.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Next() (key, value []byte, err error) {
	if len(s.models) == 0 {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice")
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *SliceIterator) Release() {
	s.models = nil
}

// ReadAll drains and releases it.
func ReadAll(it Iterator) ([]Model, error) {
	defer it.Release()
	var res []Model
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		case err != nil:
			return nil, err
		}
		res = append(res, Pair(key, value))
	}
}

// Op is a buffered Set or Delete.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

func SetOp(key, value []byte) Op { return Op{key: key, value: value} }
func DelOp(key []byte) Op        { return Op{key: key, del: true} }

// Apply runs the operation against out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// OpBatch queues operations and replays them in order on Write. It gives no
// atomicity, so use it only over in-memory layers or stores that commit
// separately, like the iavl working tree.
type OpBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*OpBatch)(nil)

func NewOpBatch(out SetDeleter) *OpBatch {
	return &OpBatch{out: out}
}

func (b *OpBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *OpBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *OpBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	return nil
}
