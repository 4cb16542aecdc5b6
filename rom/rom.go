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

// Package rom reads CHIP-8 program images from a filesystem.
package rom

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/massung/quartz/asm"
	"github.com/massung/quartz/chip8"
	"github.com/spf13/afero"
)

// SourceExt is the extension of assembly source files.
const SourceExt = ".asm"

// Load reads the program at path. Programs larger than the space between
// chip8.ProgramStart and the end of memory fail with
// chip8.ErrProgramTooLarge. Files ending in SourceExt are assembled first.
func Load(fs afero.Fs, path string) ([]byte, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening rom: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening rom: %s is a directory", path)
	}

	if strings.EqualFold(filepath.Ext(path), SourceExt) {
		return assemble(fs, path)
	}

	if info.Size() > chip8.MaxProgramSize {
		return nil, fmt.Errorf("rom %s is %d bytes: %w", path, info.Size(), chip8.ErrProgramTooLarge)
	}

	program, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	return program, nil
}

// assemble the source file at path.
func assemble(fs afero.Fs, path string) ([]byte, error) {
	source, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	a, err := asm.Assemble(source)
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", path, err)
	}

	return a.ROM, nil
}
