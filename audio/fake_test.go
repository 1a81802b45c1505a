package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// fakeOutput stands in for the speaker so tests run without a device
type fakeOutput struct {
	mu sync.Mutex

	initErr      error
	initCount    int
	initRate     beep.SampleRate
	played       []beep.Streamer
	suspendCount int
	resumeCount  int
	clearCount   int
	closed       bool
}

func (f *fakeOutput) Init(rate beep.SampleRate, bufferSize int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCount++
	f.initRate = rate
	return f.initErr
}

func (f *fakeOutput) Play(s ...beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, s...)
}

func (f *fakeOutput) Lock()   {}
func (f *fakeOutput) Unlock() {}

func (f *fakeOutput) Suspend() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suspendCount++
	return nil
}

func (f *fakeOutput) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumeCount++
	return nil
}

func (f *fakeOutput) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCount++
}

func (f *fakeOutput) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeOutput) resumes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumeCount
}

func (f *fakeOutput) suspends() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suspendCount
}

// recordSink captures synthesis requests instead of mixing them.
// Timer-scheduled steps dispatch from other goroutines, so access is
// locked.
type recordSink struct {
	mu     sync.Mutex
	tones  []toneRequest
	noises []noiseRequest
}

func (r *recordSink) playTone(req toneRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tones = append(r.tones, req)
}

func (r *recordSink) playNoise(req noiseRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noises = append(r.noises, req)
}

func (r *recordSink) toneCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tones)
}

func (r *recordSink) noiseCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.noises)
}

func (r *recordSink) tone(i int) toneRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tones[i]
}

func (r *recordSink) noise(i int) noiseRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.noises[i]
}

// newTestEngine builds an initialized engine on a fake output with a
// recording sink
func newTestEngine() (*Engine, *fakeOutput, *recordSink) {
	out := &fakeOutput{}
	e := New(DefaultConfig(), WithOutput(out))
	e.Initialize()

	sink := &recordSink{}
	e.sink = sink
	return e, out, sink
}
