package sim

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs.
type IDGenerator interface {
	// Generate an ID.
	Generate() string
}

var (
	idGeneratorMu sync.Mutex
	idGenerator   IDGenerator
)

// UseSequentialIDGenerator configures the ID generator to generate
// deterministic, sequential IDs.
func UseSequentialIDGenerator() {
	idGeneratorMu.Lock()
	idGenerator = &sequentialIDGenerator{}
	idGeneratorMu.Unlock()
}

// GetIDGenerator returns the ID generator used in the current simulation.
// Unless configured otherwise, IDs are globally unique xid strings.
func GetIDGenerator() IDGenerator {
	idGeneratorMu.Lock()
	defer idGeneratorMu.Unlock()

	if idGenerator == nil {
		idGenerator = xidGenerator{}
	}

	return idGenerator
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	return strconv.FormatUint(atomic.AddUint64(&g.nextID, 1), 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
