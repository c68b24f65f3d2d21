package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/store"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	tmtypes "github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"
)

// GenOptions builds the app_state of a new chain from command line
// arguments.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc keeps the tendermint part of a genesis file as raw json, so
// only app_state is touched.
type GenesisDoc map[string]json.RawMessage

// GenesisFile is the genesis location under a tendermint home.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state built by gen into the genesis file,
// creating the file with a random chain id when missing. An existing
// app_state fails with ErrDuplicate.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	path := GenesisFile(home)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := newGenesis(path); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", path)
	}

	doc, err := readGenesis(path)
	if err != nil {
		return err
	}
	if hasState(doc["app_state"]) {
		return errors.Wrapf(errors.ErrDuplicate, "app_state already set in %s", path)
	}
	if doc["app_state"], err = gen(args); err != nil {
		return err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, out, 0600); err != nil {
		return err
	}
	logger.Info("Initialized app_state", "path", path)
	return nil
}

// ValidateGenesis runs the initializer over the app_state of every file
// against a throwaway store and stops at the first rejected one.
func ValidateGenesis(ini trinity.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: validate <genesis.json>...")
	}
	for _, path := range paths {
		doc, err := readGenesis(path)
		if err != nil {
			return err
		}
		var opts trinity.Options
		if hasState(doc["app_state"]) {
			if err := json.Unmarshal(doc["app_state"], &opts); err != nil {
				return errors.Wrapf(errors.ErrInvalidInput, "%s: app_state: %s", path, err)
			}
		}
		if err := ini.FromGenesis(opts, store.MemStore()); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

// newGenesis writes a genesis without validators. tendermint init adds
// them.
func newGenesis(path string) error {
	if err := cmn.EnsureDir(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	doc := tmtypes.GenesisDoc{
		ChainID:     fmt.Sprintf("trinity-%v", cmn.RandStr(6)),
		GenesisTime: tmtime.Now(),
	}
	return errors.Wrap(doc.SaveAs(path), "save genesis")
}

func hasState(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "{}":
		return false
	}
	return true
}

func readGenesis(path string) (GenesisDoc, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%s: %s", path, err)
	}
	return doc, nil
}
