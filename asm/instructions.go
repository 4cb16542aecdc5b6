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

package asm

import (
	"fmt"

	"github.com/massung/quartz/chip8"
)

/// assembleInstruction assembles an instruction or directive.
///
func (a *Assembly) assembleInstruction(mnemonic string, tokens []token) {
	switch mnemonic {
	case "BYTE":
		a.assembleBYTE(tokens)
	case "WORD":
		a.assembleWORD(tokens)
	case "ALIGN":
		a.assembleALIGN(tokens)
	case "PAD":
		a.assemblePAD(tokens)
	default:
		ins := a.instruction(mnemonic, tokens)
		if ins == nil {
			panic(fmt.Errorf("illegal operands for %s", mnemonic))
		}

		a.emit(ins)
	}
}

/// instruction returns the instruction for a mnemonic and its operands, or
/// nil if the operands don't fit any form of it.
///
func (a *Assembly) instruction(mnemonic string, tokens []token) chip8.Instruction {
	switch mnemonic {
	case "CLS":
		if len(tokens) == 0 {
			return chip8.Cls{}
		}
	case "RET":
		if len(tokens) == 0 {
			return chip8.Ret{}
		}
	case "JP":
		return a.assembleJP(tokens)
	case "CALL":
		if ops, ok := a.match(tokens, tokenLit); ok {
			return chip8.Call{Addr: address(ops[0])}
		}
	case "SE":
		if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
			return chip8.SkipIf{X: reg(ops[0]), Byte: imm(ops[1])}
		}
		if ops, ok := a.match(tokens, tokenV, tokenV); ok {
			return chip8.SkipIfXY{X: reg(ops[0]), Y: reg(ops[1])}
		}
	case "SNE":
		if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
			return chip8.SkipIfNot{X: reg(ops[0]), Byte: imm(ops[1])}
		}
		if ops, ok := a.match(tokens, tokenV, tokenV); ok {
			return chip8.SkipIfNotXY{X: reg(ops[0]), Y: reg(ops[1])}
		}
	case "SKP":
		if ops, ok := a.match(tokens, tokenV); ok {
			return chip8.SkipIfPressed{X: reg(ops[0])}
		}
	case "SKNP":
		if ops, ok := a.match(tokens, tokenV); ok {
			return chip8.SkipIfNotPressed{X: reg(ops[0])}
		}
	case "LD":
		return a.assembleLD(tokens)
	case "OR", "AND", "XOR", "SUB", "SUBN":
		if ops, ok := a.match(tokens, tokenV, tokenV); ok {
			return aluXY(mnemonic, reg(ops[0]), reg(ops[1]))
		}
	case "ADD":
		if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
			return chip8.AddX{X: reg(ops[0]), Byte: imm(ops[1])}
		}
		if ops, ok := a.match(tokens, tokenV, tokenV); ok {
			return chip8.AddXY{X: reg(ops[0]), Y: reg(ops[1])}
		}
		if ops, ok := a.match(tokens, tokenI, tokenV); ok {
			return chip8.AddIX{X: reg(ops[1])}
		}
	case "SHR", "SHL":
		return a.assembleShift(mnemonic, tokens)
	case "RND":
		if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
			return chip8.Rnd{X: reg(ops[0]), Byte: imm(ops[1])}
		}
	case "DRW":
		if ops, ok := a.match(tokens, tokenV, tokenV, tokenLit); ok {
			return chip8.Drw{X: reg(ops[0]), Y: reg(ops[1]), N: nybble(ops[2])}
		}
	}

	return nil
}

func aluXY(mnemonic string, x, y uint8) chip8.Instruction {
	switch mnemonic {
	case "OR":
		return chip8.Or{X: x, Y: y}
	case "AND":
		return chip8.And{X: x, Y: y}
	case "XOR":
		return chip8.Xor{X: x, Y: y}
	case "SUB":
		return chip8.SubXY{X: x, Y: y}
	default:
		return chip8.SubYX{X: x, Y: y}
	}
}

/// assembleJP assembles JP NNN and JP V0, NNN.
///
func (a *Assembly) assembleJP(tokens []token) chip8.Instruction {
	if ops, ok := a.match(tokens, tokenLit); ok {
		return chip8.Jump{Addr: address(ops[0])}
	}

	if ops, ok := a.match(tokens, tokenV, tokenLit); ok && reg(ops[0]) == 0 {
		return chip8.JumpV0{Addr: address(ops[1])}
	}

	return nil
}

/// assembleShift assembles SHR/SHL Vx, with an optional Vy that is ignored.
///
func (a *Assembly) assembleShift(mnemonic string, tokens []token) chip8.Instruction {
	ops, ok := a.match(tokens, tokenV)
	if !ok {
		if ops, ok = a.match(tokens, tokenV, tokenV); !ok {
			return nil
		}
	}

	if mnemonic == "SHR" {
		return chip8.Shr{X: reg(ops[0])}
	}
	return chip8.Shl{X: reg(ops[0])}
}

/// assembleLD assembles every form of LD.
///
func (a *Assembly) assembleLD(tokens []token) chip8.Instruction {
	if ops, ok := a.match(tokens, tokenV, tokenLit); ok {
		return chip8.LoadX{X: reg(ops[0]), Byte: imm(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenV, tokenV); ok {
		return chip8.LoadXY{X: reg(ops[0]), Y: reg(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenI, tokenLit); ok {
		return chip8.LoadI{Addr: address(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenV, tokenDT); ok {
		return chip8.LoadXDT{X: reg(ops[0])}
	}

	if ops, ok := a.match(tokens, tokenV, tokenK); ok {
		return chip8.LoadXK{X: reg(ops[0])}
	}

	if ops, ok := a.match(tokens, tokenDT, tokenV); ok {
		return chip8.LoadDTX{X: reg(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenST, tokenV); ok {
		return chip8.LoadSTX{X: reg(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenF, tokenV); ok {
		return chip8.LoadF{X: reg(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenB, tokenV); ok {
		return chip8.LoadB{X: reg(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenIndirect, tokenV); ok {
		return chip8.SaveRegs{X: reg(ops[1])}
	}

	if ops, ok := a.match(tokens, tokenV, tokenIndirect); ok {
		return chip8.LoadRegs{X: reg(ops[0])}
	}

	return nil
}

/// assembleBYTE writes literal bytes and strings.
///
func (a *Assembly) assembleBYTE(tokens []token) {
	if len(tokens) == 0 {
		panic(fmt.Errorf("expected bytes"))
	}

	for _, t := range tokens {
		op := a.resolve(t)

		switch op.typ {
		case tokenLit:
			a.write(imm(op))
		case tokenText:
			a.write([]byte(op.val.(string))...)
		default:
			panic(fmt.Errorf("invalid byte"))
		}
	}
}

/// assembleWORD writes 16-bit big-endian values.
///
func (a *Assembly) assembleWORD(tokens []token) {
	if len(tokens) == 0 {
		panic(fmt.Errorf("expected words"))
	}

	for _, t := range tokens {
		op := a.resolve(t)

		if op.typ != tokenLit || op.val.(int) < 0 || op.val.(int) > 0xFFFF {
			panic(fmt.Errorf("invalid word"))
		}

		n := op.val.(int)

		// store msb first
		a.write(byte(n>>8), byte(n))
	}
}

/// assembleALIGN pads with zeros up to a power of 2 boundary.
///
func (a *Assembly) assembleALIGN(tokens []token) {
	if len(tokens) == 1 {
		if op := a.resolveNow(tokens[0]); op.typ == tokenLit {
			n := op.val.(int)

			if n > 0 && n&(n-1) == 0 {
				if offset := len(a.ROM) & (n - 1); offset != 0 {
					a.write(make([]byte, n-offset)...)
				}
				return
			}
		}
	}

	panic(fmt.Errorf("illegal alignment"))
}

/// assemblePAD reserves a number of zero bytes.
///
func (a *Assembly) assemblePAD(tokens []token) {
	if len(tokens) == 1 {
		if op := a.resolveNow(tokens[0]); op.typ == tokenLit && op.val.(int) >= 0 {
			a.write(make([]byte, op.val.(int))...)
			return
		}
	}

	panic(fmt.Errorf("illegal size"))
}
