// Package commands holds the trinityd subcommands that do not need a
// running node.
package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
)

// Example is one fixture, written as <Filename>.json and <Filename>.bin.
type Example struct {
	Filename string
	Obj      trinity.Marshaller
}

// TestGenCmd writes every example into the directory named by the first
// argument, "testdata" by default, so client codecs can be checked
// against the node's encoding of challenges and transactions.
func TestGenCmd(examples []Example, args []string) error {
	dir := "testdata"
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	for _, ex := range examples {
		if err := writeExample(dir, ex); err != nil {
			return errors.Wrap(err, ex.Filename)
		}
	}
	return nil
}

func writeExample(dir string, ex Example) error {
	js, err := json.MarshalIndent(ex.Obj, "", "  ")
	if err != nil {
		return err
	}
	bin, err := ex.Obj.Marshal()
	if err != nil {
		return err
	}
	base := filepath.Join(dir, ex.Filename)
	if err := ioutil.WriteFile(base+".json", js, 0644); err != nil {
		return err
	}
	return ioutil.WriteFile(base+".bin", bin, 0644)
}
