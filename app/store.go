package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the storage half of the ledger: the block lifecycle, genesis
// and queries. BaseApp embeds it and adds transactions.
//
// Info, InitChain, BeginBlock, EndBlock and Commit have no way to report an
// error to tendermint, so a failure there panics and stops the node.
type StoreApp struct {
	name        string
	store       *CommitStore
	initializer trinity.Initializer
	queryRouter trinity.QueryRouter
	logger      log.Logger
	debug       bool

	// chainID is empty until genesis was loaded.
	chainID string
	// appContext outlives blocks, blockContext is replaced on BeginBlock.
	appContext   trinity.Context
	blockContext trinity.Context
}

// NewStoreApp loads the latest committed version of store. It panics when
// the store cannot be read.
func NewStoreApp(name string, store trinity.CommitKVStore, queryRouter trinity.QueryRouter, ctx trinity.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		appContext:  ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID = mustLoadChainID(s.DeliverStore()); s.chainID != "" {
		s.appContext = trinity.WithChainID(s.appContext, s.chainID)
	}
	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = trinity.WithHeight(s.appContext, last.Version)
	return s
}

// GetChainID returns the chain id written at genesis, if any.
func (s *StoreApp) GetChainID() string { return s.chainID }

// WithInit sets the extensions that read the genesis app_state.
func (s *StoreApp) WithInit(init trinity.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes failed queries report the full error chain.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger replaces the logger of the app and of every context it hands
// out from now on.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appContext = trinity.WithLogger(s.appContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger { return s.logger }

// BlockContext carries the chain id and the header of the current block.
func (s *StoreApp) BlockContext() trinity.Context { return s.blockContext }

// DeliverStore is the state DeliverTx writes to until the next Commit.
func (s *StoreApp) DeliverStore() trinity.CacheableKVStore { return s.store.DeliverStore() }

// CheckStore is the mempool state, dropped on Commit.
func (s *StoreApp) CheckStore() trinity.CacheableKVStore { return s.store.CheckStore() }

// loadGenesis runs once, on the InitChain of a fresh chain.
func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing from genesis")
	}
	var opts trinity.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "app_state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.appContext = trinity.WithChainID(s.appContext, chainID)
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed block so tendermint knows where to replay
// from.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock puts the header, height and time of the block into the context
// every transaction of that block sees.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := trinity.WithHeader(s.appContext, req.Header)
	ctx = trinity.WithHeight(ctx, req.Header.Height)
	s.blockContext = trinity.WithBlockTime(ctx, req.Header.Time)
	return abci.ResponseBeginBlock{}
}

// EndBlock leaves the validator set alone.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
