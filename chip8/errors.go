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

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned when a program won't fit between
	// ProgramStart and the end of memory.
	ErrProgramTooLarge = errors.New("program too large to fit in memory")

	// ErrMemoryBounds is wrapped by every BoundsError.
	ErrMemoryBounds = errors.New("memory access out of bounds")

	// ErrStackOverflow is returned by CALL with all 16 stack slots in use.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned by RET with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrKeyBounds is returned by SKP/SKNP when Vx doesn't name a key.
	ErrKeyBounds = errors.New("key index out of range")

	// ErrNoKeyWaitHandler is returned by LD Vx, K when no handler is set.
	ErrNoKeyWaitHandler = errors.New("no key wait handler")

	// ErrStopped is returned by Step once Stop has been called.
	ErrStopped = errors.New("virtual machine stopped")
)

/// DecodeError is returned when an opcode doesn't match any instruction.
///
type DecodeError struct {
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid opcode: %04X", e.Opcode)
}

/// BoundsError describes an access that would fall outside of memory.
///
type BoundsError struct {
	// Op is what was being done: "fetch", "draw", "bcd", "store" or "load".
	Op string

	// Address is the first address that was out of range.
	Address uint
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s at #%04X: %s", e.Op, e.Address, ErrMemoryBounds)
}

/// Unwrap allows errors.Is(err, ErrMemoryBounds).
///
func (e *BoundsError) Unwrap() error {
	return ErrMemoryBounds
}
