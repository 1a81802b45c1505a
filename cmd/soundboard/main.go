// Command soundboard is an interactive test bench for the chime
// engine: every built-in recipe on a key, live bus volumes, the
// ambient hum and streamed music, all without writing a host program.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/arcadehq/chime/audio"
)

var (
	musicFlag  = flag.String("music", "", "URL or path of a music track for the m key")
	recipeFlag = flag.String("recipes", "", "TOML recipe file overriding the built-ins")
	logFlag    = flag.String("log", "", "Write structured logs to this file")
)

func main() {
	// Panic recovery: restore the terminal before the trace prints
	var screen tcell.Screen
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\nsoundboard crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	log := zerolog.Nop()
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = zerolog.New(f).With().Timestamp().Logger()
	}

	cfg := audio.LoadConfig()
	if *recipeFlag != "" {
		cfg.RecipeFile = *recipeFlag
	}

	svc := audio.NewService(cfg, audio.WithLogger(log))
	if err := svc.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start audio: %v\n", err)
		os.Exit(1)
	}
	defer svc.Stop()

	if svc.IsDisabled() {
		fmt.Fprintln(os.Stderr, "No audio device available, nothing to do")
		os.Exit(1)
	}
	engine := svc.Engine()

	var err error
	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	board := newBoard(engine, *musicFlag)
	board.run(screen)
}

// board holds the interactive state
type board struct {
	engine   *audio.Engine
	musicSrc string

	bindings map[rune]string
	order    []rune

	humOn        bool
	musicPlaying bool
	status       string
}

// recipe key bindings; number rows stay free for volume control
var defaultBindings = map[rune]string{
	'a': "collect",
	'b': "bell",
	'c': "crash",
	'd': "default-beep",
	'e': "error",
	'g': "countdown-go",
	'k': "brake-skid",
	'l': "laser-shot",
	'n': "countdown",
	'o': "menu-click",
	'p': "powerup",
	'r': "engine-rev",
	'u': "digital-uprising",
	'v': "bot-victory",
	'x': "level-up",
}

func newBoard(engine *audio.Engine, musicSrc string) *board {
	b := &board{
		engine:   engine,
		musicSrc: musicSrc,
		bindings: defaultBindings,
		status:   "ready",
	}
	for key := range b.bindings {
		b.order = append(b.order, key)
	}
	sort.Slice(b.order, func(i, j int) bool { return b.order[i] < b.order[j] })
	return b
}

func (b *board) run(screen tcell.Screen) {
	for {
		b.draw(screen)

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return
			}
			if ev.Key() == tcell.KeyRune {
				if !b.handleKey(ev.Rune()) {
					return
				}
			}
		}
	}
}

// handleKey dispatches one key press; returns false to quit
func (b *board) handleKey(r rune) bool {
	switch r {
	case 'q':
		return false

	case 'h':
		if b.humOn {
			b.engine.StopAmbientHum()
			b.status = "hum off"
		} else {
			b.engine.StartAmbientHum(0.6)
			b.status = "hum on"
		}
		b.humOn = !b.humOn

	case 'm':
		if b.musicSrc == "" {
			b.status = "no music source, pass -music"
			break
		}
		if b.musicPlaying {
			b.engine.StopMusic()
			b.status = "music stopped"
		} else {
			b.engine.PlayMusic(context.Background(), b.musicSrc, audio.MusicOptions{Loop: true})
			b.status = "music playing"
		}
		b.musicPlaying = !b.musicPlaying

	case '1', '2':
		b.adjust(audio.BusMaster, r == '2')
	case '3', '4':
		b.adjust(audio.BusMusic, r == '4')
	case '5', '6':
		b.adjust(audio.BusSfx, r == '6')

	default:
		if name, ok := b.bindings[r]; ok {
			b.engine.PlaySound(name)
			b.status = "played " + name
		}
	}
	return true
}

const volumeStep = 0.1

func (b *board) adjust(bus audio.Bus, up bool) {
	delta := -volumeStep
	if up {
		delta = volumeStep
	}

	v := b.engine.Volume(bus) + delta
	switch bus {
	case audio.BusMaster:
		b.engine.SetMasterVolume(v)
		b.status = fmt.Sprintf("master %.1f", b.engine.Volume(audio.BusMaster))
	case audio.BusMusic:
		b.engine.SetMusicVolume(v)
		b.status = fmt.Sprintf("music %.1f", b.engine.Volume(audio.BusMusic))
	case audio.BusSfx:
		b.engine.SetSfxVolume(v)
		b.status = fmt.Sprintf("sfx %.1f", b.engine.Volume(audio.BusSfx))
	}
}

func (b *board) draw(screen tcell.Screen) {
	screen.Clear()
	style := tcell.StyleDefault
	dim := style.Foreground(tcell.ColorGray)

	row := 0
	put(screen, 0, row, style.Bold(true), "chime soundboard")
	row += 2

	for _, key := range b.order {
		put(screen, 2, row, style, fmt.Sprintf("%c  %s", key, b.bindings[key]))
		row++
	}
	row++

	put(screen, 2, row, dim, "h  toggle ambient hum")
	row++
	put(screen, 2, row, dim, "m  toggle music")
	row++
	put(screen, 2, row, dim, "1/2 master  3/4 music  5/6 sfx volume")
	row++
	put(screen, 2, row, dim, "q or Esc to quit")
	row += 2

	put(screen, 0, row, style, "status: "+b.status)

	screen.Show()
}

func put(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
