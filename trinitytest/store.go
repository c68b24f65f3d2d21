package trinitytest

import (
	"os"
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/store/iavl"
)

// CommitKVStore opens a leveldb backed store in a temporary directory, the
// same engine trinityd runs on. cleanup removes the directory.
func CommitKVStore(t testing.TB) (db trinity.CommitKVStore, cleanup func()) {
	dbpath, err := os.MkdirTemp("", "trinity")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	cleanup = func() { os.RemoveAll(dbpath) }
	commit, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		cleanup()
		t.Fatalf("cannot open the store: %s", err)
	}
	return commit, cleanup
}
