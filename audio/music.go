package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/arcadehq/chime/constants"
)

// musicTrack is the engine's reference to the currently playing track
type musicTrack struct {
	src  string
	ctrl *beep.Ctrl
}

// PlayMusic fetches, decodes and plays a track through the music bus,
// replacing whatever is currently playing. Fire-and-forget: fetch and
// decode happen off the caller's goroutine, and every failure is
// logged rather than surfaced. Call order decides the winner: the
// generation is claimed before the fetch starts, so a slow earlier
// request can never supersede a later one.
func (e *Engine) PlayMusic(ctx context.Context, src string, opts MusicOptions) {
	if !e.ready() {
		return
	}
	gen := e.nextMusicGen()
	go func() {
		if err := e.playMusic(ctx, src, opts, gen); err != nil {
			e.log.Warn().Err(err).Str("src", src).Msg("music not played")
		}
	}()
}

// nextMusicGen claims the next music generation. Only the track
// holding the latest generation may install itself.
func (e *Engine) nextMusicGen() uint64 {
	e.musicMu.Lock()
	defer e.musicMu.Unlock()
	e.musicGen++
	return e.musicGen
}

func (e *Engine) playMusic(ctx context.Context, src string, opts MusicOptions, gen uint64) error {
	data, err := e.fetchAudio(ctx, src)
	if err != nil {
		return err
	}

	stream, format, err := decodeAudio(src, data)
	if err != nil {
		return err
	}

	var s beep.Streamer = stream
	if opts.Loop {
		s = beep.Loop(-1, stream)
	}
	rate := e.sampleRate()
	if format.SampleRate != rate {
		s = beep.Resample(constants.ResampleQuality, format.SampleRate, rate, s)
	}

	ctrl := &beep.Ctrl{Streamer: s}

	// Stop-and-replace stays under the music lock end to end so a
	// stale track can never re-add itself after its replacement's
	// clear
	e.musicMu.Lock()
	defer e.musicMu.Unlock()

	if gen != e.musicGen {
		e.log.Debug().Str("src", src).Msg("music superseded during fetch, dropping")
		return nil
	}

	prev := e.currentMusic
	e.currentMusic = &musicTrack{src: src, ctrl: ctrl}
	if prev != nil {
		e.out.Lock()
		prev.ctrl.Paused = true
		e.out.Unlock()
	}
	e.graph.clearMusic()
	e.graph.addMusic(ctrl)

	return nil
}

// StopMusic stops and releases the current track, if any. Claiming a
// fresh generation also drops any fetch still in flight.
func (e *Engine) StopMusic() {
	e.musicMu.Lock()
	e.musicGen++
	cur := e.currentMusic
	e.currentMusic = nil
	e.musicMu.Unlock()

	if cur == nil {
		return
	}
	e.out.Lock()
	cur.ctrl.Paused = true
	e.out.Unlock()
	e.graph.clearMusic()
}

// CurrentMusic returns the source of the playing track, or "" when
// nothing plays
func (e *Engine) CurrentMusic() string {
	e.musicMu.Lock()
	defer e.musicMu.Unlock()
	if e.currentMusic == nil {
		return ""
	}
	return e.currentMusic.src
}

// fetchAudio loads the resource bytes from a URL or local path
func (e *Engine) fetchAudio(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := e.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(src)
}

// nopCloseReader adapts an in-memory buffer for the beep decoders,
// which want a closable (and for seeking, seekable) reader
type nopCloseReader struct {
	*bytes.Reader
}

func (nopCloseReader) Close() error { return nil }

// decodeAudio picks a decoder from the source extension
func decodeAudio(src string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	r := nopCloseReader{bytes.NewReader(data)}

	ext := strings.ToLower(path.Ext(srcPath(src)))
	switch ext {
	case ".wav":
		s, format, err := wav.Decode(r)
		return s, format, wrapDecodeErr(err, src)
	case ".mp3":
		s, format, err := mp3.Decode(r)
		return s, format, wrapDecodeErr(err, src)
	case ".flac":
		s, format, err := flac.Decode(r)
		return s, format, wrapDecodeErr(err, src)
	case ".ogg", ".oga":
		s, format, err := vorbis.Decode(r)
		return s, format, wrapDecodeErr(err, src)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func wrapDecodeErr(err error, src string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrDecode, src, err)
}

// srcPath strips query and fragment from URL sources so the extension
// check sees the path
func srcPath(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		return src[:i]
	}
	return src
}
