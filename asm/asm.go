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

// Package asm assembles CHIP-8 source code into a program that can be
// loaded at chip8.ProgramStart.
//
// Each line is an optional .LABEL in the first column followed by an
// instruction, or an indented instruction. Comments start with ';'.
// Literals are decimal, #hex or $binary where '.' is a 0 bit. Labels can
// be given a value with EQU or name a register with VAR:
//
//	.SPEED  EQU #02
//	.X      VAR V3
//	.LOOP   ADD X, SPEED
//	        JP LOOP
//
// Instructions use the same syntax as chip8.Instruction.String, so the
// output of the disassembler can be assembled again. BYTE, WORD, ALIGN and
// PAD lay out data.
package asm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"

	"github.com/massung/quartz/chip8"
)

/// ErrUnresolvedLabel is returned for references to labels that are never
/// defined.
///
var ErrUnresolvedLabel = errors.New("unresolved label")

/// Error is an assembly error on a line of source.
///
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return e.Err.Error()
}

/// Unwrap allows errors.Is on the underlying error.
///
func (e *Error) Unwrap() error {
	return e.Err
}

/// mnemonics are the instructions and directives the assembler knows.
///
var mnemonics = map[string]struct{}{
	"CLS": {}, "RET": {}, "JP": {}, "CALL": {}, "SE": {}, "SNE": {},
	"SKP": {}, "SKNP": {}, "LD": {}, "OR": {}, "AND": {}, "XOR": {},
	"ADD": {}, "SUB": {}, "SUBN": {}, "SHR": {}, "SHL": {}, "RND": {},
	"DRW": {}, "BYTE": {}, "WORD": {}, "ALIGN": {}, "PAD": {},
}

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	// ROM is the assembled program, to be loaded at chip8.ProgramStart.
	ROM []byte

	// Labels maps each label to its address or EQU value.
	Labels map[string]int

	// Vars maps each VAR label to the register it names.
	Vars map[string]int

	// known holds the labels from the first pass so that later lines can
	// be referenced in the second.
	known *Assembly
}

/// Assemble CHIP-8 source code.
///
func Assemble(source []byte) (*Assembly, error) {
	// the first pass finds the address of every label
	first := newAssembly(nil)
	if err := first.run(source); err != nil {
		return nil, err
	}

	a := newAssembly(first)
	if err := a.run(source); err != nil {
		return nil, err
	}

	// drop everything below the program
	a.ROM = a.ROM[chip8.ProgramStart:]
	a.known = nil

	return a, nil
}

func newAssembly(known *Assembly) *Assembly {
	return &Assembly{
		ROM:    make([]byte, chip8.ProgramStart, chip8.MemorySize),
		Labels: make(map[string]int),
		Vars:   make(map[string]int),
		known:  known,
	}
}

/// run assembles every line of source.
///
func (a *Assembly) run(source []byte) (err error) {
	var line int

	// errors while assembling are raised with panic
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				e = fmt.Errorf("%v", r)
			}
			err = &Error{Line: line, Err: e}
		}
	}()

	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(source)))

	for line = 1; scanner.Scan(); line++ {
		a.assemble(&tokenScanner{bytes: scanner.Bytes()})
	}

	if err := scanner.Err(); err != nil {
		return &Error{Line: line, Err: err}
	}

	return nil
}

/// assemble a single line.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	if t.typ == tokenLabel {
		t = a.assembleLabel(t.val.(string), s)
	}

	switch t.typ {
	case tokenInstruction:
		a.assembleInstruction(t.val.(string), s.scanOperands())
	case tokenEnd:
	default:
		panic(fmt.Errorf("expected instruction"))
	}
}

/// assembleLabel defines a label at the current address, or with the
/// value given by EQU or VAR. It returns the token after the label.
///
func (a *Assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.Labels[label]; exists {
		panic(fmt.Errorf("duplicate label %s", label))
	}
	if _, exists := a.Vars[label]; exists {
		panic(fmt.Errorf("duplicate label %s", label))
	}

	// by default, the label is assigned the current address
	a.Labels[label] = len(a.ROM)

	t := s.scanToken()

	if t.typ != tokenEqu && t.typ != tokenVar {
		return t
	}

	v := s.scanToken()

	switch {
	case t.typ == tokenEqu && v.typ == tokenLit:
		a.Labels[label] = v.val.(int)
	case t.typ == tokenVar && v.typ == tokenV:
		delete(a.Labels, label)
		a.Vars[label] = v.val.(int)
	default:
		panic(fmt.Errorf("illegal value for %s", label))
	}

	// should be the final token
	if t = s.scanToken(); t.typ != tokenEnd {
		panic(fmt.Errorf("unexpected token after %s", label))
	}

	return t
}

/// resolve expands a label reference to its value or register.
///
func (a *Assembly) resolve(t token) token {
	if t.typ != tokenRef {
		return t
	}

	label := t.val.(string)

	if x, ok := a.Vars[label]; ok {
		return token{typ: tokenV, val: x}
	}
	if v, ok := a.Labels[label]; ok {
		return token{typ: tokenLit, val: v}
	}

	if a.known != nil {
		if v, ok := a.known.Labels[label]; ok {
			return token{typ: tokenLit, val: v}
		}
	} else {
		// first pass, the label may be defined further down
		return token{typ: tokenLit, val: 0}
	}

	panic(fmt.Errorf("%w: %s", ErrUnresolvedLabel, label))
}

/// resolveNow is like resolve, but the value must already be known on the
/// first pass since it changes the size of the program.
///
func (a *Assembly) resolveNow(t token) token {
	if t.typ == tokenRef && a.known == nil {
		label := t.val.(string)

		if _, ok := a.Labels[label]; !ok {
			panic(fmt.Errorf("%s must be defined before it is used here", label))
		}
	}

	return a.resolve(t)
}

/// match the operand tokens against a list of types, expanding labels.
///
func (a *Assembly) match(tokens []token, m ...tokenType) ([]token, bool) {
	if len(tokens) != len(m) {
		return nil, false
	}

	ops := make([]token, 0, len(m))

	for i, typ := range m {
		t := a.resolve(tokens[i])

		if t.typ != typ {
			return nil, false
		}

		ops = append(ops, t)
	}

	return ops, true
}

/// write bytes to the program.
///
func (a *Assembly) write(b ...byte) {
	if len(a.ROM)+len(b) > chip8.MemorySize {
		panic(chip8.ErrProgramTooLarge)
	}

	a.ROM = append(a.ROM, b...)
}

/// emit an instruction.
///
func (a *Assembly) emit(ins chip8.Instruction) {
	op := chip8.Encode(ins)

	a.write(byte(op>>8), byte(op))
}

// operand values

func reg(t token) uint8 {
	return uint8(t.val.(int))
}

func address(t token) uint16 {
	n := t.val.(int)

	if n < 0 || n >= chip8.MemorySize {
		panic(fmt.Errorf("address out of range: %d", n))
	}

	return uint16(n)
}

func imm(t token) byte {
	n := t.val.(int)

	if n < -0x80 || n > 0xFF {
		panic(fmt.Errorf("byte out of range: %d", n))
	}

	return byte(n)
}

func nybble(t token) uint8 {
	n := t.val.(int)

	if n < 0 || n > 0xF {
		panic(fmt.Errorf("sprite height out of range: %d", n))
	}

	return uint8(n)
}
