/*
Package app wires the challenge engine and its collaborators into a
complete ABCI application: the transaction envelope, the decorator
stack, the message and query routers and the genesis initializers.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/app"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/orm"
	"github.com/iov-one/trinity/store/iavl"
	"github.com/iov-one/trinity/x"
	"github.com/iov-one/trinity/x/asset"
	"github.com/iov-one/trinity/x/cash"
	"github.com/iov-one/trinity/x/challenge"
	"github.com/iov-one/trinity/x/registry"
	"github.com/iov-one/trinity/x/sigs"
	"github.com/iov-one/trinity/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Name is returned by the ABCI Info call.
const Name = "trinity"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// AssetControl returns a controller for asset functions
func AssetControl() asset.Controller {
	return asset.NewController(asset.NewBucket())
}

// Chain returns a chain of decorators, to handle authentication,
// metrics, logging, and recovery. Metrics are registered with reg
// unless it is nil.
func Chain(reg prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(reg),
		utils.NewTagger(),
		utils.CheckSavepoint(),
		sigs.NewDecorator(),
		// a failing message still bumps the signer sequence
		utils.DeliverSavepoint(),
	)
}

// Router returns a router dispatching to every message handler of the
// application.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, CashControl())
	asset.RegisterRoutes(r, authFn, AssetControl())
	challenge.RegisterRoutes(r, authFn, registry.NewRegistry(), CashControl(), AssetControl())
	return r
}

// QueryRouter returns a query router exposing every bucket of the
// application and the raw store under "/".
func QueryRouter() trinity.QueryRouter {
	r := trinity.NewQueryRouter()
	r.RegisterAll(
		challenge.RegisterQuery,
		cash.RegisterQuery,
		asset.RegisterQuery,
		registry.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() trinity.Initializer {
	return app.ChainInitializers(
		registry.Initializer{},
		cash.Initializer{},
		asset.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) trinity.Handler {
	authFn := Authenticator()
	return Chain(reg).WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h trinity.Handler,
	tx trinity.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (trinity.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}
