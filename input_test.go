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

package main

import (
	"testing"

	"github.com/massung/quartz/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

type fakeInput struct {
	keys   [chip8.NumKeys]bool
	paused bool
	steps  int
	resets int
	speed  int
}

func (f *fakeInput) SetKey(key uint8, pressed bool) { f.keys[key] = pressed }
func (f *fakeInput) TogglePause()                   { f.paused = !f.paused }
func (f *fakeInput) Pause()                         { f.paused = true }
func (f *fakeInput) StepOnce()                      { f.steps++ }
func (f *fakeInput) Reset()                         { f.resets++ }
func (f *fakeInput) Faster()                        { f.speed++ }
func (f *fakeInput) Slower()                        { f.speed-- }

func keyEvent(typ uint32, code sdl.Scancode, mod uint16) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{
		Type:   typ,
		Keysym: sdl.Keysym{Scancode: code, Mod: mod},
	}
}

func TestKeyMap(t *testing.T) {
	assert.Equal(t, chip8.NumKeys, len(KeyMap))

	// every keypad key is mapped exactly once
	var seen [chip8.NumKeys]bool
	for _, key := range KeyMap {
		assert.True(t, key < chip8.NumKeys)
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestProcessKey(t *testing.T) {
	tests := []struct {
		name   string
		events []*sdl.KeyboardEvent
		paused bool
		resets int
		steps  int
		speed  int
		quit   bool
	}{
		{
			name:   "pause",
			events: []*sdl.KeyboardEvent{keyEvent(sdl.KEYDOWN, sdl.SCANCODE_SPACE, 0)},
			paused: true,
		},
		{
			name: "pause twice",
			events: []*sdl.KeyboardEvent{
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_F5, 0),
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_F5, 0),
			},
		},
		{
			name:   "reset",
			events: []*sdl.KeyboardEvent{keyEvent(sdl.KEYDOWN, sdl.SCANCODE_BACKSPACE, 0)},
			resets: 1,
		},
		{
			name: "reset paused while paused",
			events: []*sdl.KeyboardEvent{
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_SPACE, 0),
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_BACKSPACE, sdl.KMOD_LCTRL),
			},
			paused: true,
			resets: 1,
		},
		{
			name:   "reset paused",
			events: []*sdl.KeyboardEvent{keyEvent(sdl.KEYDOWN, sdl.SCANCODE_BACKSPACE, sdl.KMOD_RCTRL)},
			paused: true,
			resets: 1,
		},
		{
			name: "step",
			events: []*sdl.KeyboardEvent{
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_F6, 0),
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_F10, 0),
			},
			steps: 2,
		},
		{
			name: "speed",
			events: []*sdl.KeyboardEvent{
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_RIGHTBRACKET, 0),
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_RIGHTBRACKET, 0),
				keyEvent(sdl.KEYDOWN, sdl.SCANCODE_LEFTBRACKET, 0),
			},
			speed: 1,
		},
		{
			name:   "key up does nothing",
			events: []*sdl.KeyboardEvent{keyEvent(sdl.KEYUP, sdl.SCANCODE_SPACE, 0)},
		},
		{
			name:   "quit",
			events: []*sdl.KeyboardEvent{keyEvent(sdl.KEYDOWN, sdl.SCANCODE_ESCAPE, 0)},
			quit:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Screen{logger: log.NewTestLogger(t)}
			in := &fakeInput{}

			for _, ev := range tt.events {
				s.processKey(ev, in)
			}

			assert.Equal(t, tt.paused, in.paused)
			assert.Equal(t, tt.resets, in.resets)
			assert.Equal(t, tt.steps, in.steps)
			assert.Equal(t, tt.speed, in.speed)
			assert.Equal(t, tt.quit, s.quit)
		})
	}
}

func TestProcessKey_Keypad(t *testing.T) {
	s := &Screen{logger: log.NewTestLogger(t)}
	in := &fakeInput{}

	s.processKey(keyEvent(sdl.KEYDOWN, sdl.SCANCODE_Q, 0), in)
	assert.True(t, in.keys[0x4])

	s.processKey(keyEvent(sdl.KEYUP, sdl.SCANCODE_Q, 0), in)
	assert.False(t, in.keys[0x4])
}
