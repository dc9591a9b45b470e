package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ErrNoNodeIdentity is returned when neither machine-id nor hostname is available.
var ErrNoNodeIdentity = errors.New("uid: no stable node identity available")

// ObjectID generates 32-byte collision-resistant identifiers encoded as hex.
//
// The layout is timestamp (6 bytes), node hash (6), pid (2), counter (4) and
// random tail (14), so IDs sort roughly by creation time while staying unique
// across processes and hosts.
type ObjectID struct {
	node    [6]byte
	pid     uint16
	counter uint32
}

// NewObjectID builds a generator bound to this host's stable identity.
func NewObjectID() (*ObjectID, error) {
	src, err := nodeIdentity()
	if err != nil {
		return nil, err
	}

	g := &ObjectID{pid: uint16(os.Getpid())}

	sum := sha256.Sum256([]byte(src))
	copy(g.node[:], sum[:6])

	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	g.counter = uint32(seed[0])<<24 | uint32(seed[1])<<16 | uint32(seed[2])<<8 | uint32(seed[3])

	return g, nil
}

func nodeIdentity() (string, error) {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s, nil
		}
	}

	if h, err := os.Hostname(); err == nil {
		if h = strings.TrimSpace(h); h != "" {
			return h, nil
		}
	}

	return "", ErrNoNodeIdentity
}

// Generate returns a new 64-character hex identifier.
func (g *ObjectID) Generate() string {
	var raw [32]byte

	ts := uint64(time.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		raw[i] = byte(ts >> (40 - 8*i))
	}

	copy(raw[6:12], g.node[:])

	raw[12] = byte(g.pid >> 8)
	raw[13] = byte(g.pid)

	c := atomic.AddUint32(&g.counter, 1)
	raw[14] = byte(c >> 24)
	raw[15] = byte(c >> 16)
	raw[16] = byte(c >> 8)
	raw[17] = byte(c)

	if _, err := rand.Read(raw[18:]); err != nil {
		// Deterministic tail keeps IDs unique per counter tick even if the
		// random source is exhausted.
		sum := sha256.Sum256(raw[:18])
		copy(raw[18:], sum[:14])
	}

	var out [64]byte
	hex.Encode(out[:], raw[:])
	return string(out[:])
}
