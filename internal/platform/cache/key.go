package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

var keyJSON = sonic.Config{SortMapKeys: true}.Froze()

// Key derives a stable cache key from the canonical JSON form of v.
// Equal values produce equal keys regardless of map iteration order.
func Key(v any) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := keyJSON.NewEncoder(buf).Encode(v); err != nil {
		return "", errors.Wrap(err, "encode cache key")
	}

	sum := sha256.Sum256(buf.B)
	return hex.EncodeToString(sum[:]), nil
}
