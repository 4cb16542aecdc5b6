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

package main

import (
	"bytes"
	"fmt"

	"github.com/bradleyjkemp/memviz"
	"github.com/massung/quartz/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
)

/// State is a snapshot of the virtual machine registers, small enough to
/// graph.
///
type State struct {
	PC    uint16
	SP    uint8
	I     uint16
	DT    byte
	ST    byte
	V     [chip8.NumRegisters]byte
	Stack []uint16
	Keys  [chip8.NumKeys]bool

	// Next is the disassembled instruction at PC.
	Next string
}

/// Snapshot the registers of vm.
///
func Snapshot(vm *chip8.VM) *State {
	st := &State{
		PC:   vm.PC(),
		SP:   vm.SP(),
		I:    vm.I(),
		DT:   vm.DT(),
		ST:   vm.ST(),
		Keys: vm.Keys(),
		Next: vm.Disassemble(vm.PC()),
	}

	for x := range st.V {
		st.V[x] = vm.V(uint8(x))
	}
	for i := 0; i < int(vm.SP()); i++ {
		st.Stack = append(st.Stack, vm.Stack(i))
	}

	return st
}

/// DebugHelp logs the keyboard layout.
///
func DebugHelp(logger *log.Logger) {
	lines := []string{
		"Virtual keys:",
		"  1-2-3-4",
		"  Q-W-E-R",
		"  A-S-D-F",
		"  Z-X-C-V",
		"",
		"Emulation keys:",
		"  ESC      - Quit",
		"  BS       - Reboot (+CTRL paused)",
		"  [ / ]    - Slower / faster",
		"  F1       - Help",
		"  F2       - Registers",
		"  F5       - Pause",
		"  F6       - Step",
		"  F8       - Dump state graph",
	}

	for _, line := range lines {
		logger.Info(line)
	}
}

/// DebugRegisters logs the value of all the CHIP-8 registers.
///
func DebugRegisters(logger *log.Logger, vm *chip8.VM) {
	st := Snapshot(vm)

	logger.Info("Registers",
		log.Hex("pc", st.PC),
		log.Uint8("sp", st.SP),
		log.Hex("i", st.I),
		log.Hex("dt", st.DT),
		log.Hex("st", st.ST),
		log.String("next", st.Next))

	for x, v := range st.V {
		logger.Info(fmt.Sprintf("  V%X - #%02X", x, v))
	}
}

/// WriteMemViz writes a Graphviz graph of the machine state to path.
///
func WriteMemViz(fs afero.Fs, path string, vm *chip8.VM) error {
	var buf bytes.Buffer
	memviz.Map(&buf, Snapshot(vm))

	if err := afero.WriteFile(fs, path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing state graph: %w", err)
	}

	return nil
}

/// debugMemory writes the state graph to the -memviz path.
///
func (s *Screen) debugMemory() {
	if s.memviz == "" {
		s.logger.Info("Run with -memviz to dump the state graph")
		return
	}

	if err := WriteMemViz(afero.NewOsFs(), s.memviz, s.vm); err != nil {
		s.logger.Error("Dumping state failed", log.Err(err))
		return
	}

	s.logger.Info("State graph written", log.String("path", s.memviz))
}
