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
	"fmt"

	"github.com/massung/quartz/chip8"
	"github.com/massung/quartz/emulator"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	// BackgroundColor and PixelColor tint the black and white framebuffer.
	BackgroundColor = sdl.Color{R: 143, G: 145, B: 133, A: 255}
	PixelColor      = sdl.Color{R: 17, G: 29, B: 43, A: 255}
)

/// Screen is the SDL frontend: a window showing the display, the beeper and
/// the keyboard.
///
type Screen struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	/// pixels is the tinted copy of the framebuffer uploaded to texture.
	pixels []byte

	audio  *Audio
	vm     *chip8.VM
	logger *log.Logger

	/// memviz is where F8 writes the state graph.
	memviz string

	quit bool
}

/// NewScreen opens a window scale times the size of the display.
///
func NewScreen(vm *chip8.VM, logger *log.Logger, scale int, memviz string) (*Screen, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	w := int32(chip8.DisplayWidth * scale)
	h := int32(chip8.DisplayHeight * scale)

	window, renderer, err := sdl.CreateWindowAndRenderer(w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	window.SetTitle("CHIP-8")

	// the display is streamed into a texture the size of the display
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		chip8.DisplayWidth, chip8.DisplayHeight)
	if err != nil {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating screen texture: %w", err)
	}

	s := &Screen{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, chip8.FramebufferSize),
		vm:       vm,
		logger:   logger,
		memviz:   memviz,
	}

	// no sound is not fatal
	if s.audio, err = NewAudio(); err != nil {
		logger.Error("Audio unavailable", log.Err(err))
	}

	return s, nil
}

/// Close the window and shut down SDL.
///
func (s *Screen) Close() {
	if s.audio != nil {
		s.audio.Close()
	}

	_ = s.texture.Destroy()
	_ = s.renderer.Destroy()
	_ = s.window.Destroy()

	sdl.Quit()
}

/// Refresh the window with the CHIP-8 framebuffer.
///
func (s *Screen) Refresh(display []byte) error {
	if len(display) < chip8.FramebufferSize {
		return fmt.Errorf("framebuffer is %d bytes, expected %d", len(display), chip8.FramebufferSize)
	}

	tint(s.pixels, display)

	if err := s.texture.Update(nil, s.pixels, chip8.DisplayWidth*3); err != nil {
		return fmt.Errorf("updating screen texture: %w", err)
	}

	// the background color for the window
	_ = s.renderer.SetDrawColor(BackgroundColor.R, BackgroundColor.G, BackgroundColor.B, BackgroundColor.A)
	_ = s.renderer.Clear()

	// stretch the display to fit
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("copying screen texture: %w", err)
	}

	s.renderer.Present()

	return nil
}

/// SetTone turns the beeper on or off.
///
func (s *Screen) SetTone(on bool) {
	if s.audio != nil {
		s.audio.SetTone(on)
	}
}

/// tint converts the black and white framebuffer to the window colors.
///
func tint(dst, display []byte) {
	for i := 0; i+2 < len(display) && i+2 < len(dst); i += 3 {
		c := BackgroundColor
		if display[i] != 0 {
			c = PixelColor
		}

		dst[i+0] = c.R
		dst[i+1] = c.G
		dst[i+2] = c.B
	}
}

var _ emulator.Frontend = (*Screen)(nil)
