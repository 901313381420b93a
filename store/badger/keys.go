package badger

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Key prefixes for different data types
const (
	eventPrefix     = "evt"
	eventUserPrefix = "evtu"
	pendingPrefix   = "evtp"
)

// makeEventKey generates a key for an event by ID.
func makeEventKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", eventPrefix, id))
}

// makeUserKey generates a composite key for the per-user recency index.
// Format: prefix:userID:invertedTimestamp:id
// The timestamp is inverted before BigEndian encoding so that ascending
// lexicographic iteration yields newest-first ordering.
func makeUserKey(userID string, timestamp time.Time, id string) []byte {
	prefix := makeUserPrefix(userID)
	buf := make([]byte, 0, len(prefix)+8+1+len(id))
	buf = append(buf, prefix...)
	buf = binary.BigEndian.AppendUint64(buf, math.MaxUint64-uint64(timestamp.UnixMicro()))
	buf = append(buf, ':')
	buf = append(buf, id...)
	return buf
}

// makeUserPrefix generates the iteration prefix for a user's recency index.
func makeUserPrefix(userID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", eventUserPrefix, userID))
}

// makePendingKey generates a composite key for the unprocessed-events index.
// Format: prefix:timestamp:id, BigEndian so iteration is oldest-first.
func makePendingKey(timestamp time.Time, id string) []byte {
	prefix := pendingPrefix + ":"
	buf := make([]byte, 0, len(prefix)+8+1+len(id))
	buf = append(buf, prefix...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(timestamp.UnixMicro()))
	buf = append(buf, ':')
	buf = append(buf, id...)
	return buf
}
