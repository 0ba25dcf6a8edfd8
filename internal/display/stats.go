package display

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats samples process memory and CPU off the game goroutine.
// The game only reads the last sample.
type Stats struct {
	rss uint64 // atomic
	cpu uint64 // atomic, float64 bits
}

// StartStats samples every interval until ctx is done.
func StartStats(ctx context.Context, interval time.Duration, lg *log.Logger) *Stats {
	s := &Stats{}
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		lg.Warn("process stats unavailable", "err", err)
		return s
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			s.sample(ctx, p, lg)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

func (s *Stats) sample(ctx context.Context, p *process.Process, lg *log.Logger) {
	if mem, err := p.MemoryInfoWithContext(ctx); err == nil {
		atomic.StoreUint64(&s.rss, mem.RSS)
	} else {
		lg.Debug("memory sample failed", "err", err)
	}
	if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
		atomic.StoreUint64(&s.cpu, math.Float64bits(cpu))
	}
}

// RSS is the last resident set size in bytes.
func (s *Stats) RSS() uint64 { return atomic.LoadUint64(&s.rss) }

// CPU is the last CPU usage in percent.
func (s *Stats) CPU() float64 { return math.Float64frombits(atomic.LoadUint64(&s.cpu)) }

// overlayLines builds the text of the F3 overlay.
func (g *Game) overlayLines() []string {
	lines := []string{
		fmt.Sprintf("FPS %.1f  TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("images %d cached, %d loads", g.cache.Len(), g.cache.Attempts()),
		fmt.Sprintf("turns %d  frame gen %d  auto %s", g.loop.Advances(), g.frameGen, g.loop.State()),
	}
	if g.stats != nil {
		lines = append(lines, fmt.Sprintf("RSS %s  CPU %.1f%%", humanize.Bytes(g.stats.RSS()), g.stats.CPU()))
	}
	return lines
}
