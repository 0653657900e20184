package identifier

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh record identifier. It prefers a V4 UUID; if the
// crypto randomness source is unavailable it falls back to a
// timestamped pseudo-random id so callers always get a usable value.
func New() string {
	id, err := uuid.NewRandom()
	if err == nil {
		return id.String()
	}

	return fallback()
}

func fallback() string {
	random := strconv.FormatUint(rand.Uint64(), 36)
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	return "id-" + random + "-" + stamp
}
