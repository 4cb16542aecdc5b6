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

package chip8

const (
	// DisplayWidth and DisplayHeight are the size of the display in pixels.
	DisplayWidth  = 64
	DisplayHeight = 32

	// FramebufferSize is the length of the RGB framebuffer.
	FramebufferSize = 3 * DisplayWidth * DisplayHeight
)

/// Display returns the framebuffer: 3 bytes (RGB) per pixel, row by row,
/// each byte 0x00 (off) or 0xFF (on). The slice aliases the virtual machine's
/// display and must not be modified.
///
func (vm *VM) Display() []byte {
	return vm.display[:]
}

/// Pixel returns the color of the pixel at x, y. Pixels outside the display
/// are black.
///
func (vm *VM) Pixel(x, y int) (r, g, b byte) {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return 0, 0, 0
	}

	i := pixelIndex(x, y)

	return vm.display[i], vm.display[i+1], vm.display[i+2]
}

/// pixelIndex returns the offset of pixel x, y in the framebuffer.
///
func pixelIndex(x, y int) int {
	return y*DisplayWidth*3 + x*3
}

func (vm *VM) pixelOn(x, y int) bool {
	return vm.display[pixelIndex(x, y)] == 0xFF
}

func (vm *VM) setPixel(x, y int, on bool) {
	c := byte(0)
	if on {
		c = 0xFF
	}

	i := pixelIndex(x, y)

	vm.display[i+0] = c
	vm.display[i+1] = c
	vm.display[i+2] = c
}

/// notifyDisplay tells the display update handler the framebuffer changed.
///
func (vm *VM) notifyDisplay() {
	if vm.displayUpdate != nil {
		vm.displayUpdate()
	}
}

/// Clear the video display memory.
///
func (vm *VM) cls() {
	vm.display = [FramebufferSize]byte{}

	vm.notifyDisplay()
}

/// draw a sprite at I to video memory at vx, vy. Each pixel wraps around
/// the edges of the display on its own.
///
func (vm *VM) drw(x, y, n uint8) error {
	start := uint(vm.i)
	end := start + uint(n)

	if end > MemorySize {
		return &BoundsError{Op: "draw", Address: maxUint(start, MemorySize)}
	}

	ox := int(vm.v[x])
	oy := int(vm.v[y])

	collision := false
	changed := false

	// draw each row of the sprite, MSB first
	for row, s := range vm.memory[start:end] {
		py := (oy + row) % DisplayHeight

		for bit := 0; bit < 8; bit++ {
			if s&(0x80>>uint(bit)) == 0 {
				continue
			}

			px := (ox + bit) % DisplayWidth
			on := vm.pixelOn(px, py)

			// was a pixel turned off?
			if on {
				collision = true
			}

			vm.setPixel(px, py, !on)
			changed = true
		}
	}

	// set carry flag if any collision occurred
	if collision {
		vm.v[FlagRegister] = 1
	} else {
		vm.v[FlagRegister] = 0
	}

	if changed {
		vm.notifyDisplay()
	}

	return nil
}

func maxUint(a, b uint) uint {
	if a > b {
		return a
	}

	return b
}
