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
)

func TestTint(t *testing.T) {
	background := []byte{BackgroundColor.R, BackgroundColor.G, BackgroundColor.B}
	pixel := []byte{PixelColor.R, PixelColor.G, PixelColor.B}

	tests := []struct {
		name     string
		display  []byte
		expected []byte
	}{
		{
			name:     "off",
			display:  []byte{0x00, 0x00, 0x00},
			expected: background,
		},
		{
			name:     "on",
			display:  []byte{0xFF, 0xFF, 0xFF},
			expected: pixel,
		},
		{
			name:     "mixed",
			display:  []byte{0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00},
			expected: append(append([]byte{}, pixel...), background...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, len(tt.display))
			tint(dst, tt.display)
			assert.Equal(t, tt.expected, dst)
		})
	}
}

func TestTint_Framebuffer(t *testing.T) {
	vm := chip8.New()
	dst := make([]byte, chip8.FramebufferSize)

	tint(dst, vm.Display())

	for i := 0; i < len(dst); i += 3 {
		assert.Equal(t, BackgroundColor.R, dst[i])
	}
}

func TestTint_ShortBuffer(t *testing.T) {
	dst := []byte{1, 2}
	tint(dst, []byte{0xFF, 0xFF, 0xFF})
	assert.Equal(t, []byte{1, 2}, dst)
}
