package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func genState(args []string) (json.RawMessage, error) {
	return json.RawMessage(`{"cash": [{"address": "0102030405060708090A0B0C0D0E0F1011121314", "balance": 5}]}`), nil
}

func TestInitCmdCreatesGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "trinity-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	require.NoError(t, InitCmd(genState, log.NewNopLogger(), home, nil))

	doc, err := readGenesis(GenesisFile(home))
	require.NoError(t, err)

	var chainID string
	require.NoError(t, json.Unmarshal(doc["chain_id"], &chainID))
	assert.Contains(t, chainID, "trinity-")

	var state map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["app_state"], &state))
	assert.Contains(t, state, "cash")

	// a second initialization must not overwrite the state
	err = InitCmd(genState, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestInitCmdKeepsExistingGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "trinity-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	genFile := GenesisFile(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(genFile), 0700))
	existing := `{"chain_id": "my-chain", "validators": [], "app_hash": ""}`
	require.NoError(t, ioutil.WriteFile(genFile, []byte(existing), 0600))

	require.NoError(t, InitCmd(genState, log.NewNopLogger(), home, nil))

	doc, err := readGenesis(genFile)
	require.NoError(t, err)
	assert.JSONEq(t, `"my-chain"`, string(doc["chain_id"]))
	assert.NotEmpty(t, doc["app_state"])
}

// requireKey fails unless the genesis contains the "registry" section.
type requireKey struct{}

func (requireKey) FromGenesis(opts trinity.Options, db trinity.KVStore) error {
	if _, ok := opts["registry"]; !ok {
		return errors.Wrap(errors.ErrNotFound, "registry")
	}
	return nil
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "trinity-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, ioutil.WriteFile(good, []byte(`{"app_state": {"registry": {}}}`), 0600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, ioutil.WriteFile(bad, []byte(`{"app_state": {}}`), 0600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, ioutil.WriteFile(broken, []byte(`{`), 0600))

	assert.NoError(t, ValidateGenesis(requireKey{}, []string{good}))
	assert.True(t, errors.ErrNotFound.Is(ValidateGenesis(requireKey{}, []string{good, bad})))
	assert.True(t, errors.ErrInvalidInput.Is(ValidateGenesis(requireKey{}, []string{broken})))
	assert.True(t, errors.ErrInvalidInput.Is(ValidateGenesis(requireKey{}, nil)))
}
