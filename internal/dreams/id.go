package dreams

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	idMu       sync.Mutex
	lastMillis int64
)

// NewID returns a dream identifier of the form dream_<unixMillis>_<suffix>.
//
// The millisecond component strictly increases within the process, so ids
// never repeat here; the random suffix keeps ids from different devices apart.
func NewID() string {
	idMu.Lock()
	ms := time.Now().UnixMilli()
	if ms <= lastMillis {
		ms = lastMillis + 1
	}
	lastMillis = ms
	idMu.Unlock()

	return fmt.Sprintf("dream_%d_%s", ms, randomSuffix(6))
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	// A failed read leaves zero bytes; the time component still keeps ids unique.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}
