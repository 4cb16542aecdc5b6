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

/// Decode an opcode into an Instruction. Opcodes that don't match any known
/// instruction return a *DecodeError holding the opcode.
///
func Decode(inst uint16) (Instruction, error) {
	// 12-bit address operand
	a := inst & 0xFFF

	// byte and nibble operands
	b := byte(inst & 0xFF)
	n := uint8(inst & 0xF)

	// x and y register operands
	x := uint8(inst >> 8 & 0xF)
	y := uint8(inst >> 4 & 0xF)

	switch inst & 0xF000 {
	case 0x0000:
		switch inst {
		case 0x00E0:
			return Cls{}, nil
		case 0x00EE:
			return Ret{}, nil
		}
	case 0x1000:
		return Jump{Addr: a}, nil
	case 0x2000:
		return Call{Addr: a}, nil
	case 0x3000:
		return SkipIf{X: x, Byte: b}, nil
	case 0x4000:
		return SkipIfNot{X: x, Byte: b}, nil
	case 0x5000:
		return SkipIfXY{X: x, Y: y}, nil
	case 0x6000:
		return LoadX{X: x, Byte: b}, nil
	case 0x7000:
		return AddX{X: x, Byte: b}, nil
	case 0x8000:
		switch n {
		case 0x0:
			return LoadXY{X: x, Y: y}, nil
		case 0x1:
			return Or{X: x, Y: y}, nil
		case 0x2:
			return And{X: x, Y: y}, nil
		case 0x3:
			return Xor{X: x, Y: y}, nil
		case 0x4:
			return AddXY{X: x, Y: y}, nil
		case 0x5:
			return SubXY{X: x, Y: y}, nil
		case 0x6:
			return Shr{X: x}, nil
		case 0x7:
			return SubYX{X: x, Y: y}, nil
		case 0xE:
			return Shl{X: x}, nil
		}
	case 0x9000:
		return SkipIfNotXY{X: x, Y: y}, nil
	case 0xA000:
		return LoadI{Addr: a}, nil
	case 0xB000:
		return JumpV0{Addr: a}, nil
	case 0xC000:
		return Rnd{X: x, Byte: b}, nil
	case 0xD000:
		return Drw{X: x, Y: y, N: n}, nil
	case 0xE000:
		switch b {
		case 0x9E:
			return SkipIfPressed{X: x}, nil
		case 0xA1:
			return SkipIfNotPressed{X: x}, nil
		}
	case 0xF000:
		switch b {
		case 0x07:
			return LoadXDT{X: x}, nil
		case 0x0A:
			return LoadXK{X: x}, nil
		case 0x15:
			return LoadDTX{X: x}, nil
		case 0x18:
			return LoadSTX{X: x}, nil
		case 0x1E:
			return AddIX{X: x}, nil
		case 0x29:
			return LoadF{X: x}, nil
		case 0x33:
			return LoadB{X: x}, nil
		case 0x55:
			return SaveRegs{X: x}, nil
		case 0x65:
			return LoadRegs{X: x}, nil
		}
	}

	return nil, &DecodeError{Opcode: inst}
}
