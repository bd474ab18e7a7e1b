package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Profiler captures a CPU profile and an execution trace when the update
// rate drops.
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
}

// NewProfiler creates a new profiler writing into dir
func NewProfiler(dir string) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}

	return &Profiler{
		captureCooldown: 10 * time.Second,
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
	}, nil
}

// CaptureProfile captures CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	baseName := fmt.Sprintf("tps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				logrus.WithError(err).Error("Error capturing CPU profile")
			}
		}()

		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				logrus.WithError(err).Error("Error capturing trace")
			}
		}()

		wg.Wait()
		p.logSummary(baseName)
	}()

	return nil
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	logrus.WithField("path", profilePath).Info("CPU profile saved")
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	logrus.WithField("path", tracePath).Info("Trace saved")
	return nil
}

func (p *Profiler) logSummary(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		logrus.WithError(err).Warn("Could not inspect profile")
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logrus.WithFields(logrus.Fields{
		"profile":     profilePath,
		"size_kb":     fmt.Sprintf("%.2f", float64(info.Size())/1024),
		"alloc_kb":    m.Alloc / 1024,
		"sys_kb":      m.Sys / 1024,
		"num_gc":      m.NumGC,
		"heapObjects": m.HeapObjects,
	}).Infof("Profile captured, view with: go tool pprof -http=:8080 %s", profilePath)
}

// TPSMonitor measures the update rate over half second windows and
// reports drops below a threshold once the game has warmed up.
type TPSMonitor struct {
	Threshold float64
	Warmup    time.Duration
	Cooldown  time.Duration

	tps      float64
	frames   int
	window   time.Duration
	elapsed  time.Duration
	lastDrop time.Duration
	dropped  bool
}

// NewTPSMonitor watches for rates below threshold
func NewTPSMonitor(threshold float64) *TPSMonitor {
	return &TPSMonitor{
		Threshold: threshold,
		Warmup:    3 * time.Second,
		Cooldown:  10 * time.Second,
		tps:       threshold,
	}
}

// TPS returns the rate measured over the last full window.
func (m *TPSMonitor) TPS() float64 {
	return m.tps
}

// Observe records one update that took dt and reports whether it closed a
// window whose rate counts as a drop.
func (m *TPSMonitor) Observe(dt time.Duration) bool {
	m.frames++
	m.window += dt
	m.elapsed += dt
	if m.window < 500*time.Millisecond {
		return false
	}
	m.tps = float64(m.frames) / m.window.Seconds()
	m.frames = 0
	m.window = 0

	if m.tps >= m.Threshold || m.elapsed < m.Warmup {
		return false
	}
	if m.dropped && m.elapsed-m.lastDrop < m.Cooldown {
		return false
	}
	m.dropped = true
	m.lastDrop = m.elapsed
	return true
}
