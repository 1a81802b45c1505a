package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output abstracts the playback device so the engine can degrade to
// silence when no device exists and tests can run without one
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Suspend() error
	Resume() error
	Clear()
	Close()
}

// speakerOutput is the default Output backed by the beep speaker
type speakerOutput struct{}

// NewSpeakerOutput returns the real device output
func NewSpeakerOutput() Output {
	return speakerOutput{}
}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Suspend() error          { return speaker.Suspend() }
func (speakerOutput) Resume() error           { return speaker.Resume() }
func (speakerOutput) Clear()                  { speaker.Clear() }
func (speakerOutput) Close()                  { speaker.Close() }
