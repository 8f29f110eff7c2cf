package streaming

import (
	"sync"
	"testing"
	"time"

	"github.com/annel0/sector-stream/internal/vec"
	"github.com/annel0/sector-stream/internal/world"
	"github.com/annel0/sector-stream/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
)

// fakeClock сдвигается на step при каждом вызове Now
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// countingGen отдаёт сетки из одного блока и считает вызовы по координатам
type countingGen struct {
	mu    sync.Mutex
	fill  block.Block
	calls map[vec.Vec3]int
}

func newCountingGen(fill block.Block) *countingGen {
	return &countingGen{fill: fill, calls: make(map[vec.Vec3]int)}
}

func (g *countingGen) Generate(coord vec.Vec3) *world.Grid {
	g.mu.Lock()
	g.calls[coord]++
	g.mu.Unlock()

	grid := world.NewGrid()
	if g.fill != block.Air {
		grid.Set(world.NewLocalCoord(1, 1, 1), g.fill)
	}
	return grid
}

func (g *countingGen) Calls(coord vec.Vec3) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[coord]
}

type fakeGeometry struct{ vertices int }

func (f fakeGeometry) VertexCount() int { return f.vertices }

// countingMesher запоминает, сколько раз строилась модель каждой сетки
type countingMesher struct {
	calls map[*world.Grid]int
	total int
}

func newCountingMesher() *countingMesher {
	return &countingMesher{calls: make(map[*world.Grid]int)}
}

func (m *countingMesher) BuildMesh(grid *world.Grid, adj world.AdjacentSectors) world.Geometry {
	m.calls[grid]++
	m.total++
	return fakeGeometry{vertices: 36}
}

func newTestStreamer(t *testing.T, gen Generator, mesher Mesher, clock *fakeClock) *Streamer {
	t.Helper()
	if clock == nil {
		clock = newFakeClock(0)
	}
	opts := DefaultOptions()
	opts.Registerer = prometheus.NewRegistry()
	opts.Clock = clock.Now
	s := NewStreamer(gen, mesher, opts)
	t.Cleanup(s.Close)
	return s
}

func solidGrid() *world.Grid {
	return world.NewFilledGrid(block.Limestone)
}

// push кладёт сообщения в очередь так, как это сделал бы воркер
func push(t *testing.T, s *Streamer, msgs ...Message) {
	t.Helper()
	for _, m := range msgs {
		if err := s.inbox.Send(m); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
}

func generated(coord vec.Vec3, grid *world.Grid) GeneratedMessage {
	return GeneratedMessage{Coord: coord, Grid: grid}
}

func query(coord vec.Vec3, render bool) QueryMessage {
	return QueryMessage{Coord: coord, ShouldRender: render}
}

func neighbors(c vec.Vec3) []vec.Vec3 {
	return []vec.Vec3{c.Back(), c.Front(), c.Top(), c.Bottom(), c.Left(), c.Right()}
}
