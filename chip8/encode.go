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

import "fmt"

/// Encode returns the opcode for an instruction. Operands are masked to the
/// width of their field, so Decode(Encode(ins)) returns ins for any
/// instruction with in-range operands.
///
func Encode(ins Instruction) uint16 {
	switch i := ins.(type) {
	case Cls:
		return 0x00E0
	case Ret:
		return 0x00EE
	case Jump:
		return 0x1000 | nnn(i.Addr)
	case Call:
		return 0x2000 | nnn(i.Addr)
	case SkipIf:
		return 0x3000 | xnn(i.X, i.Byte)
	case SkipIfNot:
		return 0x4000 | xnn(i.X, i.Byte)
	case SkipIfXY:
		return 0x5000 | xy(i.X, i.Y)
	case LoadX:
		return 0x6000 | xnn(i.X, i.Byte)
	case AddX:
		return 0x7000 | xnn(i.X, i.Byte)
	case LoadXY:
		return 0x8000 | xy(i.X, i.Y)
	case Or:
		return 0x8001 | xy(i.X, i.Y)
	case And:
		return 0x8002 | xy(i.X, i.Y)
	case Xor:
		return 0x8003 | xy(i.X, i.Y)
	case AddXY:
		return 0x8004 | xy(i.X, i.Y)
	case SubXY:
		return 0x8005 | xy(i.X, i.Y)
	case Shr:
		return 0x8006 | xy(i.X, 0)
	case SubYX:
		return 0x8007 | xy(i.X, i.Y)
	case Shl:
		return 0x800E | xy(i.X, 0)
	case SkipIfNotXY:
		return 0x9000 | xy(i.X, i.Y)
	case LoadI:
		return 0xA000 | nnn(i.Addr)
	case JumpV0:
		return 0xB000 | nnn(i.Addr)
	case Rnd:
		return 0xC000 | xnn(i.X, i.Byte)
	case Drw:
		return 0xD000 | xy(i.X, i.Y) | uint16(i.N&0xF)
	case SkipIfPressed:
		return 0xE09E | xy(i.X, 0)
	case SkipIfNotPressed:
		return 0xE0A1 | xy(i.X, 0)
	case LoadXDT:
		return 0xF007 | xy(i.X, 0)
	case LoadXK:
		return 0xF00A | xy(i.X, 0)
	case LoadDTX:
		return 0xF015 | xy(i.X, 0)
	case LoadSTX:
		return 0xF018 | xy(i.X, 0)
	case AddIX:
		return 0xF01E | xy(i.X, 0)
	case LoadF:
		return 0xF029 | xy(i.X, 0)
	case LoadB:
		return 0xF033 | xy(i.X, 0)
	case SaveRegs:
		return 0xF055 | xy(i.X, 0)
	case LoadRegs:
		return 0xF065 | xy(i.X, 0)
	}

	// Instruction is sealed, every implementation is handled above
	panic(fmt.Sprintf("unknown instruction %T", ins))
}

func nnn(addr uint16) uint16 {
	return addr & 0xFFF
}

func xnn(x uint8, b byte) uint16 {
	return uint16(x&0xF)<<8 | uint16(b)
}

func xy(x, y uint8) uint16 {
	return uint16(x&0xF)<<8 | uint16(y&0xF)<<4
}
