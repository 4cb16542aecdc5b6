/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

// Package terminal is a text mode frontend drawing the display with block
// characters.
package terminal

import (
	"context"
	"fmt"
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/massung/quartz/chip8"
	"github.com/massung/quartz/emulator"
)

const (
	// Width and Height of the display in cells. Each cell is two pixels
	// stacked vertically.
	Width  = chip8.DisplayWidth
	Height = chip8.DisplayHeight / 2

	// HoldFrames is how long a key stays down after being typed, since
	// terminals don't report key releases.
	HoldFrames = 6
)

// KeyMap maps the left side of a QWERTY keyboard to the hex keypad.
var KeyMap = map[rune]uint8{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// Terminal draws to and reads keys from a tcell screen.
type Terminal struct {
	screen tcell.Screen
	style  tcell.Style

	// events are pumped from the screen by a goroutine so that
	// ProcessEvents never blocks.
	events chan tcell.Event
	done   chan struct{}

	// held counts down the frames left before a key is released.
	held [chip8.NumKeys]int

	tone bool
	quit bool
}

// New initializes screen and starts reading its events.
func New(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
	}

	go t.poll()

	return t, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	close(t.done)
	t.screen.Fini()
}

func (t *Terminal) poll() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// ProcessEvents handles the keys typed since the last frame.
func (t *Terminal) ProcessEvents(in emulator.Input) bool {
	for key := range t.held {
		if t.held[key] > 0 {
			t.held[key]--

			if t.held[key] == 0 {
				in.SetKey(uint8(key), false)
			}
		}
	}

	for !t.quit {
		select {
		case ev := <-t.events:
			t.handle(ev, in)
		default:
			return true
		}
	}

	return false
}

func (t *Terminal) handle(ev tcell.Event, in emulator.Input) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			in.Reset()
		case tcell.KeyRune:
			r := unicode.ToLower(ev.Rune())

			if key, ok := KeyMap[r]; ok {
				in.SetKey(key, true)
				t.held[key] = HoldFrames
				return
			}

			switch r {
			case ' ':
				in.TogglePause()
			case '.':
				in.StepOnce()
			case '[':
				in.Slower()
			case ']':
				in.Faster()
			}
		}
	}
}

// WaitKey blocks until a keypad key is typed. Other keys are dropped.
func (t *Terminal) WaitKey(ctx context.Context) (uint8, bool) {
	for !t.quit {
		select {
		case <-ctx.Done():
			return 0, false
		case ev := <-t.events:
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}

			switch key.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				t.quit = true
			case tcell.KeyRune:
				if k, ok := KeyMap[unicode.ToLower(key.Rune())]; ok {
					return k, true
				}
			}
		}
	}

	return 0, false
}

// Refresh draws the framebuffer, two rows of pixels per line of text.
func (t *Terminal) Refresh(display []byte) error {
	if len(display) < chip8.FramebufferSize {
		return fmt.Errorf("framebuffer is %d bytes, expected %d", len(display), chip8.FramebufferSize)
	}

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			top := display[(2*y*chip8.DisplayWidth+x)*3] != 0
			bottom := display[((2*y+1)*chip8.DisplayWidth+x)*3] != 0

			t.screen.SetContent(x, y, cell(top, bottom), nil, t.style)
		}
	}

	t.drawStatus()
	t.screen.Show()

	return nil
}

// SetTone shows whether the beeper is on below the display.
func (t *Terminal) SetTone(on bool) {
	if on == t.tone {
		return
	}

	t.tone = on
	t.drawStatus()
	t.screen.Show()
}

func (t *Terminal) drawStatus() {
	r := ' '
	if t.tone {
		r = '♪'
	}

	t.screen.SetContent(0, Height, r, nil, t.style)
}

// cell returns the block character for a pair of vertical pixels.
func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
