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

/// Instruction is a single decoded CHIP-8 instruction. Each instruction type
/// holds only the operands it needs. The set of types is closed: only this
/// package can add new ones.
///
type Instruction interface {
	fmt.Stringer

	instruction()
}

type (
	// Cls clears the display (00E0).
	Cls struct{}

	// Ret returns from a subroutine (00EE).
	Ret struct{}

	// Jump to an absolute address (1NNN).
	Jump struct{ Addr uint16 }

	// Call a subroutine at an address (2NNN).
	Call struct{ Addr uint16 }

	// SkipIf skips the next instruction if Vx == NN (3XNN).
	SkipIf struct {
		X    uint8
		Byte byte
	}

	// SkipIfNot skips the next instruction if Vx != NN (4XNN).
	SkipIfNot struct {
		X    uint8
		Byte byte
	}

	// SkipIfXY skips the next instruction if Vx == Vy (5XY0).
	SkipIfXY struct{ X, Y uint8 }

	// LoadX sets Vx = NN (6XNN).
	LoadX struct {
		X    uint8
		Byte byte
	}

	// AddX sets Vx = Vx + NN without touching VF (7XNN).
	AddX struct {
		X    uint8
		Byte byte
	}

	// LoadXY sets Vx = Vy (8XY0).
	LoadXY struct{ X, Y uint8 }

	// Or sets Vx = Vx | Vy (8XY1).
	Or struct{ X, Y uint8 }

	// And sets Vx = Vx & Vy (8XY2).
	And struct{ X, Y uint8 }

	// Xor sets Vx = Vx ^ Vy (8XY3).
	Xor struct{ X, Y uint8 }

	// AddXY sets Vx = Vx + Vy, VF = carry (8XY4).
	AddXY struct{ X, Y uint8 }

	// SubXY sets Vx = Vx - Vy, VF = Vx > Vy (8XY5).
	SubXY struct{ X, Y uint8 }

	// Shr shifts Vx right, VF = old bit 0 (8XY6).
	Shr struct{ X uint8 }

	// SubYX sets Vx = Vy - Vx, VF = Vy > Vx (8XY7).
	SubYX struct{ X, Y uint8 }

	// Shl shifts Vx left, VF = old bit 7 (8XYE).
	Shl struct{ X uint8 }

	// SkipIfNotXY skips the next instruction if Vx != Vy (9XY0).
	SkipIfNotXY struct{ X, Y uint8 }

	// LoadI sets I = NNN (ANNN).
	LoadI struct{ Addr uint16 }

	// JumpV0 jumps to NNN + V0 (BNNN).
	JumpV0 struct{ Addr uint16 }

	// Rnd sets Vx = random & NN (CXNN).
	Rnd struct {
		X    uint8
		Byte byte
	}

	// Drw draws an N byte sprite from I at (Vx, Vy) (DXYN).
	Drw struct{ X, Y, N uint8 }

	// SkipIfPressed skips the next instruction if key Vx is down (EX9E).
	SkipIfPressed struct{ X uint8 }

	// SkipIfNotPressed skips the next instruction if key Vx is up (EXA1).
	SkipIfNotPressed struct{ X uint8 }

	// LoadXDT sets Vx = DT (FX07).
	LoadXDT struct{ X uint8 }

	// LoadXK blocks until a key is pressed and stores it in Vx (FX0A).
	LoadXK struct{ X uint8 }

	// LoadDTX sets DT = Vx (FX15).
	LoadDTX struct{ X uint8 }

	// LoadSTX sets ST = Vx (FX18).
	LoadSTX struct{ X uint8 }

	// AddIX sets I = I + Vx (FX1E).
	AddIX struct{ X uint8 }

	// LoadF points I at the font glyph for Vx (FX29).
	LoadF struct{ X uint8 }

	// LoadB stores the BCD of Vx at I, I+1, I+2 (FX33).
	LoadB struct{ X uint8 }

	// SaveRegs stores V0..Vx at I (FX55).
	SaveRegs struct{ X uint8 }

	// LoadRegs loads V0..Vx from I (FX65).
	LoadRegs struct{ X uint8 }
)

func (Cls) instruction()              {}
func (Ret) instruction()              {}
func (Jump) instruction()             {}
func (Call) instruction()             {}
func (SkipIf) instruction()           {}
func (SkipIfNot) instruction()        {}
func (SkipIfXY) instruction()         {}
func (LoadX) instruction()            {}
func (AddX) instruction()             {}
func (LoadXY) instruction()           {}
func (Or) instruction()               {}
func (And) instruction()              {}
func (Xor) instruction()              {}
func (AddXY) instruction()            {}
func (SubXY) instruction()            {}
func (Shr) instruction()              {}
func (SubYX) instruction()            {}
func (Shl) instruction()              {}
func (SkipIfNotXY) instruction()      {}
func (LoadI) instruction()            {}
func (JumpV0) instruction()           {}
func (Rnd) instruction()              {}
func (Drw) instruction()              {}
func (SkipIfPressed) instruction()    {}
func (SkipIfNotPressed) instruction() {}
func (LoadXDT) instruction()          {}
func (LoadXK) instruction()           {}
func (LoadDTX) instruction()          {}
func (LoadSTX) instruction()          {}
func (AddIX) instruction()            {}
func (LoadF) instruction()            {}
func (LoadB) instruction()            {}
func (SaveRegs) instruction()         {}
func (LoadRegs) instruction()         {}

/// asm formats a mnemonic and its operands the way the debugger shows them.
///
func asm(mnemonic string, operands string, args ...interface{}) string {
	return fmt.Sprintf("%-7s"+operands, append([]interface{}{mnemonic}, args...)...)
}

func (Cls) String() string                { return "CLS" }
func (Ret) String() string                { return "RET" }
func (i Jump) String() string             { return asm("JP", "#%04X", i.Addr) }
func (i Call) String() string             { return asm("CALL", "#%04X", i.Addr) }
func (i SkipIf) String() string           { return asm("SE", "V%X, #%02X", i.X, i.Byte) }
func (i SkipIfNot) String() string        { return asm("SNE", "V%X, #%02X", i.X, i.Byte) }
func (i SkipIfXY) String() string         { return asm("SE", "V%X, V%X", i.X, i.Y) }
func (i LoadX) String() string            { return asm("LD", "V%X, #%02X", i.X, i.Byte) }
func (i AddX) String() string             { return asm("ADD", "V%X, #%02X", i.X, i.Byte) }
func (i LoadXY) String() string           { return asm("LD", "V%X, V%X", i.X, i.Y) }
func (i Or) String() string               { return asm("OR", "V%X, V%X", i.X, i.Y) }
func (i And) String() string              { return asm("AND", "V%X, V%X", i.X, i.Y) }
func (i Xor) String() string              { return asm("XOR", "V%X, V%X", i.X, i.Y) }
func (i AddXY) String() string            { return asm("ADD", "V%X, V%X", i.X, i.Y) }
func (i SubXY) String() string            { return asm("SUB", "V%X, V%X", i.X, i.Y) }
func (i Shr) String() string              { return asm("SHR", "V%X", i.X) }
func (i SubYX) String() string            { return asm("SUBN", "V%X, V%X", i.X, i.Y) }
func (i Shl) String() string              { return asm("SHL", "V%X", i.X) }
func (i SkipIfNotXY) String() string      { return asm("SNE", "V%X, V%X", i.X, i.Y) }
func (i LoadI) String() string            { return asm("LD", "I, #%04X", i.Addr) }
func (i JumpV0) String() string           { return asm("JP", "V0, #%04X", i.Addr) }
func (i Rnd) String() string              { return asm("RND", "V%X, #%02X", i.X, i.Byte) }
func (i Drw) String() string              { return asm("DRW", "V%X, V%X, %d", i.X, i.Y, i.N) }
func (i SkipIfPressed) String() string    { return asm("SKP", "V%X", i.X) }
func (i SkipIfNotPressed) String() string { return asm("SKNP", "V%X", i.X) }
func (i LoadXDT) String() string          { return asm("LD", "V%X, DT", i.X) }
func (i LoadXK) String() string           { return asm("LD", "V%X, K", i.X) }
func (i LoadDTX) String() string          { return asm("LD", "DT, V%X", i.X) }
func (i LoadSTX) String() string          { return asm("LD", "ST, V%X", i.X) }
func (i AddIX) String() string            { return asm("ADD", "I, V%X", i.X) }
func (i LoadF) String() string            { return asm("LD", "F, V%X", i.X) }
func (i LoadB) String() string            { return asm("LD", "B, V%X", i.X) }
func (i SaveRegs) String() string         { return asm("LD", "[I], V%X", i.X) }
func (i LoadRegs) String() string         { return asm("LD", "V%X, [I]", i.X) }
