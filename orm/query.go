package orm

import (
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// prefixRange returns the iterator bounds covering every key that starts
// with prefix. An all 0xFF prefix has no upper bound.
func prefixRange(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end = append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
	}
	return prefix, nil
}

// queryPrefix loads every pair under prefix in key order.
func queryPrefix(db trinity.ReadOnlyKVStore, prefix []byte) ([]trinity.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	defer itr.Release()

	var res []trinity.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, trinity.Pair(key, value))
	}
}

// RegisterQuery exposes the raw store under "/", addressed by full
// database keys.
func RegisterQuery(qr trinity.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db trinity.ReadOnlyKVStore, mod string, data []byte) ([]trinity.Model, error) {
	switch mod {
	case trinity.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil || value == nil {
			return nil, err
		}
		return []trinity.Model{trinity.Pair(data, value)}, nil
	case trinity.PrefixQueryMod:
		return queryPrefix(db, data)
	}
	return nil, errors.Wrapf(errors.ErrHuman, "unknown mod: %s", mod)
}
