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

package rom

import (
	"errors"
	"os"
	"testing"

	"github.com/massung/quartz/asm"
	"github.com/massung/quartz/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/spf13/afero"
)

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	program := []byte{0x00, 0xE0, 0x12, 0x00}
	assert.NoError(t, afero.WriteFile(fs, "games/test.ch8", program, 0644))

	data, err := Load(fs, "games/test.ch8")
	assert.NoError(t, err)
	assert.Equal(t, program, data)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	assert.NoError(t, afero.WriteFile(fs, "max.ch8", make([]byte, chip8.MaxProgramSize), 0644))
	assert.NoError(t, afero.WriteFile(fs, "big.ch8", make([]byte, chip8.MaxProgramSize+1), 0644))
	assert.NoError(t, fs.Mkdir("games", 0755))

	t.Run("largest program", func(t *testing.T) {
		data, err := Load(fs, "max.ch8")
		assert.NoError(t, err)
		assert.Len(t, data, chip8.MaxProgramSize)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := Load(fs, "big.ch8")
		assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Load(fs, "missing.ch8")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(fs, "games")
		assert.ErrorContains(t, err, "is a directory")
	})
}

func TestLoad_Source(t *testing.T) {
	fs := afero.NewMemMapFs()

	source := []byte(".loop   cls\n        jp loop\n")
	assert.NoError(t, afero.WriteFile(fs, "demo.ASM", source, 0644))
	assert.NoError(t, afero.WriteFile(fs, "bad.asm", []byte("\tjp nowhere\n"), 0644))

	data, err := Load(fs, "demo.ASM")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0, 0x12, 0x00}, data)

	_, err = Load(fs, "bad.asm")
	assert.True(t, errors.Is(err, asm.ErrUnresolvedLabel))
	assert.ErrorContains(t, err, "bad.asm")
}
