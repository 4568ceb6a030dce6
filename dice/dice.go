package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

const (
	// NumDice is the size of the dice pool a turn starts with
	NumDice = 6
	// MinFace and MaxFace bound the value of a single die
	MinFace = 1
	MaxFace = 6
)

// Roller produces uniformly distributed die faces in [MinFace, MaxFace]
type Roller interface {
	Roll() int
}

// RollN rolls n dice with the given Roller
func RollN(r Roller, n int) []int {
	if n <= 0 {
		return []int{}
	}
	faces := make([]int, n)
	for i := range faces {
		faces[i] = r.Roll()
	}
	return faces
}

type randRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a Roller seeded from crypto/rand.
// It falls back to the clock if the system source is unavailable.
func NewRoller() Roller {
	var b [8]byte
	seed := time.Now().UnixNano()
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return NewSeededRoller(seed)
}

// NewSeededRoller returns a deterministic Roller.
// Two rollers built from the same seed produce the same faces.
func NewSeededRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll is safe for concurrent use
func (r *randRoller) Roll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(MaxFace) + MinFace
}

// Fixed is a Roller that cycles through preset faces.
type Fixed struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewFixed constructs a Fixed roller. With no faces every roll is a 1.
func NewFixed(faces ...int) *Fixed {
	if len(faces) == 0 {
		faces = []int{MinFace}
	}
	return &Fixed{faces: faces}
}

func (f *Fixed) Roll() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	face := f.faces[f.next%len(f.faces)]
	f.next++
	return face
}

// IsFace reports whether v is a legal die value
func IsFace(v int) bool {
	return v >= MinFace && v <= MaxFace
}
