package asset

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/errors"
	"github.com/iov-one/trinity/store"
	"github.com/iov-one/trinity/trinitytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	owner := trinitytest.NewCondition().Address()
	mint := trinitytest.NewCondition().Address()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    uint64
	}{
		"no assets": {
			genesis: `{}`,
		},
		"one holding": {
			genesis: fmt.Sprintf(`{"assets": [{"owner": "%s", "mint": "%s", "amount": 1}]}`, owner, mint),
			want:    1,
		},
		"zero amount": {
			genesis: fmt.Sprintf(`{"assets": [{"owner": "%s", "mint": "%s", "amount": 0}]}`, owner, mint),
			wantErr: errors.ErrInvalidAmount,
		},
		"missing mint": {
			genesis: fmt.Sprintf(`{"assets": [{"owner": "%s", "amount": 1}]}`, owner),
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts trinity.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))
			db := store.MemStore()
			if err := (Initializer{}).FromGenesis(opts, db); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			n, err := NewController(NewBucket()).Balance(db, owner, mint)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}
