package app

import (
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

/*
Query reads committed state. The request path names a registered query
handler, like "/challenges", optionally followed by "?prefix" for a prefix
scan or "?<index>" for a secondary index lookup. Data is the key, prefix or
index value.

Only the latest height can be queried. Key and Value of the response are
both a ResultSet, of the same length, so a query can return any number of
records.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return s.queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	last, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	if req.Height != 0 && req.Height != last.Version {
		return s.queryError(errors.Wrapf(errors.ErrInvalidInput, "height %d is not the latest", req.Height))
	}

	db := s.store.committed.CacheWrap()
	defer db.Discard()
	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return s.queryError(err)
	}
	keys, values := splitResults(models)
	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, err = keys.Marshal(); err != nil {
		return s.queryError(err)
	}
	if res.Value, err = values.Marshal(); err != nil {
		return s.queryError(err)
	}
	return res
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

// ResultSet is the wire form of the keys, or of the values, a query found.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetWire ResultSet

func (m *resultSetWire) Reset()         { *m = resultSetWire{} }
func (m *resultSetWire) String() string { return proto.CompactTextString(m) }
func (*resultSetWire) ProtoMessage()    {}

func (r *ResultSet) Marshal() ([]byte, error)   { return proto.Marshal((*resultSetWire)(r)) }
func (r *ResultSet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*resultSetWire)(r)) }

func splitResults(models []trinity.Model) (keys, values *ResultSet) {
	keys = &ResultSet{Results: make([][]byte, len(models))}
	values = &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		keys.Results[i], values.Results[i] = m.Key, m.Value
	}
	return keys, values
}

// joinResults decodes the Key and Value of a query response back into
// models.
func joinResults(rawKeys, rawValues []byte) ([]trinity.Model, error) {
	var keys, values ResultSet
	if err := keys.Unmarshal(rawKeys); err != nil {
		return nil, errors.Wrap(err, "query keys")
	}
	if err := values.Unmarshal(rawValues); err != nil {
		return nil, errors.Wrap(err, "query values")
	}
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInvalidState, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]trinity.Model, len(keys.Results))
	for i := range models {
		models[i] = trinity.Pair(keys.Results[i], values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first record of a query response into o
// and leaves o alone when nothing was found.
func UnmarshalOneResult(raw []byte, o trinity.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return o.Unmarshal(set.Results[0])
}

// QueryStore is a read only view of the raw state served by an application
// over Query. Wrapping it in a bucket lets a client decode challenges and
// balances with the same code the handlers use.
type QueryStore struct {
	app abci.Application
}

var _ trinity.ReadOnlyKVStore = (*QueryStore)(nil)

func NewQueryStore(app abci.Application) *QueryStore {
	return &QueryStore{app: app}
}

func (q *QueryStore) query(path string, data []byte) ([]trinity.Model, error) {
	res := q.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return joinResults(res.Key, res.Value)
}

func (q *QueryStore) Get(key []byte) ([]byte, error) {
	models, err := q.query("/", key)
	switch {
	case err != nil:
		return nil, err
	case len(models) > 1:
		return nil, errors.Wrapf(errors.ErrInvalidState, "%d records for one key", len(models))
	case len(models) == 0:
		return nil, nil
	}
	return models[0].Value, nil
}

func (q *QueryStore) Has(key []byte) (bool, error) {
	v, err := q.Get(key)
	return v != nil, err
}

// Iterator scans the whole state. Query only serves prefix scans, so
// bounded ranges are refused.
func (q *QueryStore) Iterator(start, end []byte) (trinity.Iterator, error) {
	models, err := q.scan(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (q *QueryStore) ReverseIterator(start, end []byte) (trinity.Iterator, error) {
	models, err := q.scan(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (q *QueryStore) scan(start, end []byte) ([]trinity.Model, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "query store only scans the entire range")
	}
	return q.query("/?prefix", nil)
}
