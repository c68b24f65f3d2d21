package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/iov-one/trinity/crypto"
	"github.com/iov-one/trinity/errors"
)

const bech32Prefix = "tri"

// AddrCmd prints the hex and the bech32 form of the address derived from
// a hex encoded ed25519 public key.
func AddrCmd(out io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: addr <hex public key>")
	}
	raw, err := hex.DecodeString(args[0])
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "public key must be hex encoded")
	}
	if len(raw) != 32 {
		return errors.Wrapf(errors.ErrInvalidInput, "ed25519 public key must be 32 bytes, got %d", len(raw))
	}
	addr := (&crypto.PublicKey{Ed25519: raw}).Address()
	b32, err := addr.Bech32(bech32Prefix)
	if err != nil {
		return errors.Wrap(err, "bech32")
	}
	_, err = fmt.Fprintf(out, "hex:    %s\nbech32: %s\n", addr, b32)
	return err
}
