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
	"errors"
	"testing"

	"github.com/massung/quartz/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestAssemble(t *testing.T) {
	source := `
; count up forever
.start   ld v0, 0
         ld i, sprite
.loop    add v0, 1
         jp loop
         call routine
.routine ret
.sprite  byte $11110000, $1..1...., #FF
`

	a, err := Assemble([]byte(source))
	assert.NoError(t, err)

	assert.Equal(t, []byte{
		0x60, 0x00,
		0xA2, 0x0C,
		0x70, 0x01,
		0x12, 0x04,
		0x22, 0x0A,
		0x00, 0xEE,
		0xF0, 0x90, 0xFF,
	}, a.ROM)

	assert.Equal(t, map[string]int{
		"START":   0x200,
		"LOOP":    0x204,
		"ROUTINE": 0x20A,
		"SPRITE":  0x20C,
	}, a.Labels)
}

func TestAssemble_EquAndVar(t *testing.T) {
	source := `
.SPEED  EQU #02
.X      VAR V3
        ADD X, SPEED
        LD X, SPEED
        SE X, V4
`

	a, err := Assemble([]byte(source))
	assert.NoError(t, err)

	assert.Equal(t, []byte{0x73, 0x02, 0x63, 0x02, 0x53, 0x40}, a.ROM)
	assert.Equal(t, 2, a.Labels["SPEED"])
	assert.Equal(t, 3, a.Vars["X"])
}

func TestAssemble_Data(t *testing.T) {
	source := `
        CLS
        ALIGN 8
        WORD #1234, END
        ALIGN 2
        PAD 2
        BYTE "hi", -1
.END
`

	a, err := Assemble([]byte(source))
	assert.NoError(t, err)

	assert.Equal(t, []byte{
		0x00, 0xE0,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x12, 0x34, 0x02, 0x11,
		0x00, 0x00,
		'H', 'I', 0xFF,
	}, a.ROM)
	assert.Equal(t, 0x211, a.Labels["END"])
}

// TestAssemble_Disassembly makes sure everything the disassembler prints
// assembles back to the same instruction.
func TestAssemble_Disassembly(t *testing.T) {
	for op := 0; op <= 0xFFFF; op++ {
		ins, err := chip8.Decode(uint16(op))
		if err != nil {
			continue
		}

		a, err := Assemble([]byte("\t" + ins.String()))
		assert.NoError(t, err, ins.String())
		assert.Len(t, a.ROM, 2)

		decoded, err := chip8.Decode(uint16(a.ROM[0])<<8 | uint16(a.ROM[1]))
		assert.NoError(t, err)
		assert.Equal(t, ins, decoded)
	}
}

func TestAssemble_Run(t *testing.T) {
	source := `
        LD V0, 10
        LD V1, 0
.LOOP   ADD V1, 3
        ADD V0, -1
        SE V0, 0
        JP LOOP
.DONE   JP DONE
`

	a, err := Assemble([]byte(source))
	assert.NoError(t, err)

	vm := chip8.New()
	assert.NoError(t, vm.LoadMemory(a.ROM))
	assert.NoError(t, vm.Step(100))

	assert.Equal(t, byte(30), vm.V(1))
	assert.Equal(t, byte(0), vm.V(0))
	assert.Equal(t, uint16(a.Labels["DONE"]), vm.PC())
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		line   int
		err    error
	}{
		{"missing operand", "\tLD V0", 1, nil},
		{"unresolved label", "\tCLS\n\tJP NOWHERE", 2, ErrUnresolvedLabel},
		{"duplicate label", ".A CLS\n.A CLS", 2, nil},
		{"not indented", "CLS", 1, nil},
		{"byte out of range", "\tLD V0, 256", 1, nil},
		{"height out of range", "\tDRW V0, V1, 16", 1, nil},
		{"address out of range", "\tJP #1000", 1, nil},
		{"too large", "\tPAD 4000", 1, chip8.ErrProgramTooLarge},
		{"unterminated string", "\tBYTE 'abc", 1, nil},
		{"unknown instruction", "\tFOO V0", 1, nil},
		{"bad alignment", "\tALIGN 3", 1, nil},
		{"pad before definition", "\tPAD LATER\n.LATER EQU 2", 1, nil},
		{"jump with vx", "\tJP V1, #200", 1, nil},
		{"bad indirection", "\tLD [V0], V1", 1, nil},
		{"bad equ", ".X EQU V0", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Assemble([]byte(tt.source))
			assert.True(t, a == nil)

			var asmErr *Error
			assert.True(t, errors.As(err, &asmErr))
			assert.Equal(t, tt.line, asmErr.Line)

			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err := &Error{Line: 3, Err: ErrUnresolvedLabel}
	assert.Equal(t, "line 3: unresolved label", err.Error())
}
