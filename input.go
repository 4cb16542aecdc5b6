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
	"context"

	"github.com/massung/quartz/emulator"
	"github.com/veandco/go-sdl2/sdl"
)

/// KeyMap maps the left side of a modern keyboard to the hex keypad.
///
var KeyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

/// waitKeyTimeout is how long WaitKey blocks on SDL before checking its
/// context again, in milliseconds.
///
const waitKeyTimeout = 50

/// ProcessEvents from SDL and map keys to the CHIP-8 keypad.
///
func (s *Screen) ProcessEvents(in emulator.Input) bool {
	for e := sdl.PollEvent(); e != nil && !s.quit; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			s.quit = true
		case *sdl.KeyboardEvent:
			s.processKey(ev, in)
		}
	}

	return !s.quit
}

func (s *Screen) processKey(ev *sdl.KeyboardEvent, in emulator.Input) {
	if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
		in.SetKey(key, ev.Type == sdl.KEYDOWN)
		return
	}

	if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
		return
	}

	switch ev.Keysym.Scancode {
	case sdl.SCANCODE_ESCAPE:
		s.quit = true
	case sdl.SCANCODE_BACKSPACE:
		in.Reset()

		// holding control during reset will reboot paused
		if ev.Keysym.Mod&sdl.KMOD_CTRL != 0 {
			in.Pause()
		}
	case sdl.SCANCODE_LEFTBRACKET:
		in.Slower()
	case sdl.SCANCODE_RIGHTBRACKET:
		in.Faster()
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		in.TogglePause()
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		in.StepOnce()
	case sdl.SCANCODE_F1, sdl.SCANCODE_H:
		DebugHelp(s.logger)
	case sdl.SCANCODE_F2:
		DebugRegisters(s.logger, s.vm)
	case sdl.SCANCODE_F8:
		s.debugMemory()
	}
}

/// WaitKey blocks until a keypad key is pressed. Quitting or cancelling ctx
/// returns false.
///
func (s *Screen) WaitKey(ctx context.Context) (uint8, bool) {
	for !s.quit {
		if ctx.Err() != nil {
			return 0, false
		}

		switch ev := sdl.WaitEventTimeout(waitKeyTimeout).(type) {
		case *sdl.QuitEvent:
			s.quit = true
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN {
				continue
			}
			if ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				s.quit = true
				continue
			}
			if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
				return key, true
			}
		}
	}

	return 0, false
}
