package app

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/commands/server"
	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/x/asset"
	"github.com/iov-one/trinity/x/cash"
	"github.com/iov-one/trinity/x/registry"
	abci "github.com/tendermint/tendermint/abci/types"
)

// initialBalance is credited to the admin account of a development genesis.
const initialBalance = 1000000000000

// GenInitOptions produces the app_state of a development chain. The admin
// address can be given as the first argument, otherwise a new key is
// generated and printed. The admin is also the treasury, the only API
// signer and the first moderator. Any further arguments are additional
// moderator addresses; at least three moderators are needed for a vote to
// reach quorum.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var admin trinity.Address
	if len(args) > 0 {
		addr, err := trinity.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "admin address")
		}
		admin = addr
	} else {
		key := crypto.GenPrivKeyEd25519()
		raw, err := key.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "serialize key")
		}
		admin = key.PublicKey().Address()
		fmt.Printf("admin private key: %X\n", raw)
	}

	moderators := []trinity.Address{admin}
	for i := 1; i < len(args); i++ {
		addr, err := trinity.ParseAddress(args[i])
		if err != nil {
			return nil, errors.Wrapf(err, "moderator %d", i)
		}
		moderators = append(moderators, addr)
	}

	tag := make(registry.Tag, registry.TagLength)
	if _, err := rand.Read(tag); err != nil {
		return nil, errors.Wrap(err, "deployment tag")
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		"conf": dict{
			"registry": registry.Configuration{
				Admin:         admin,
				Treasury:      admin,
				DeploymentTag: tag,
				APISigners:    []trinity.Address{admin},
				Moderators:    moderators,
			},
		},
		"cash": []cash.GenesisAccount{
			{Address: admin, Balance: initialBalance},
		},
		"assets": []asset.GenesisHolding{},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	stack := Stack(options.Registerer)
	application, err := Application(Name, stack, TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}
