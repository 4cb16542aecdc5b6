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
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 0x1000

	// ProgramStart is where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program LoadMemory accepts.
	MaxProgramSize = MemorySize - ProgramStart

	// StackSize is the number of return addresses the stack can hold.
	StackSize = 16

	// NumRegisters is the number of V registers.
	NumRegisters = 16

	// NumKeys is the number of keys on the hex keypad.
	NumKeys = 16

	// FlagRegister is the V register used for carry, borrow and collision.
	FlagRegister = 0xF
)

/// KeyWaitHandler blocks until a key is pressed and returns it. It is used
/// by LD Vx, K and is the only place the VM waits on the outside world.
///
type KeyWaitHandler func() byte

/// DisplayUpdateHandler is called whenever the framebuffer changes.
///
type DisplayUpdateHandler func()

/// VM is a CHIP-8 virtual machine. It is not safe for concurrent use.
///
type VM struct {
	/// rom is the last program loaded. It is kept so that Reset can put
	/// memory back to its state just after loading.
	rom []byte

	/// memory holds the font at 0x000 and the program from ProgramStart.
	memory [MemorySize]byte

	/// display is the 64x32 framebuffer, 3 bytes (RGB) per pixel.
	display [FramebufferSize]byte

	/// pc is the program counter, sp the number of stack slots in use.
	pc uint16
	sp uint8

	/// stack holds return addresses for CALL.
	stack [StackSize]uint16

	/// i is the address register.
	i uint16

	/// v are the 16 virtual registers.
	v [NumRegisters]byte

	/// delay and sound timers, counting down at 60 Hz.
	dt byte
	st byte

	/// keys hold the current state for the 16-key pad keys.
	keys [NumKeys]bool

	keyWait       KeyWaitHandler
	displayUpdate DisplayUpdateHandler

	/// clock and the time of the last timer tick.
	clock    Clock
	lastTick time.Time

	rand   *rand.Rand
	logger *log.Logger

	stopped bool
}

/// Option configures a VM created by New.
///
type Option func(*VM)

/// WithClock sets the clock used to pace the delay and sound timers.
///
func WithClock(clock Clock) Option {
	return func(vm *VM) {
		vm.clock = clock
	}
}

/// WithRand sets the random source used by RND.
///
func WithRand(r *rand.Rand) Option {
	return func(vm *VM) {
		vm.rand = r
	}
}

/// WithLogger sets a logger for loads, resets and faults.
///
func WithLogger(logger *log.Logger) Option {
	return func(vm *VM) {
		vm.logger = logger
	}
}

/// New creates a virtual machine with the font loaded and the program
/// counter at ProgramStart.
///
func New(opts ...Option) *VM {
	vm := &VM{
		clock: systemClock{},
	}

	for _, opt := range opts {
		opt(vm)
	}

	if vm.rand == nil {
		vm.rand = rand.New(rand.NewSource(vm.clock.Now().UnixNano()))
	}

	vm.Reset()

	return vm
}

/// LoadMemory copies a program into memory at ProgramStart. Programs that
/// don't fit return ErrProgramTooLarge and leave memory untouched.
///
func (vm *VM) LoadMemory(program []byte) error {
	if len(program) > MaxProgramSize {
		return ErrProgramTooLarge
	}

	// keep a pristine copy for Reset
	vm.rom = append(vm.rom[:0], program...)

	copy(vm.memory[ProgramStart:], program)

	if vm.logger != nil {
		vm.logger.Debug("Program loaded",
			log.Hex("size", len(program)),
			log.Hex("end", ProgramStart+len(program)))
	}

	return nil
}

/// Reset puts the virtual machine back to the state it was in right after
/// the last LoadMemory. Handlers are kept.
///
func (vm *VM) Reset() {
	vm.memory = [MemorySize]byte{}

	// font first, then the program
	copy(vm.memory[:], font[:])
	copy(vm.memory[ProgramStart:], vm.rom)

	// reset video memory and keys
	vm.display = [FramebufferSize]byte{}
	vm.keys = [NumKeys]bool{}

	// reset program counter and stack
	vm.pc = ProgramStart
	vm.sp = 0
	vm.stack = [StackSize]uint16{}

	// reset address and virtual registers
	vm.i = 0
	vm.v = [NumRegisters]byte{}

	// reset timer registers
	vm.dt = 0
	vm.st = 0
	vm.lastTick = vm.clock.Now()

	vm.stopped = false
}

/// SetKeyWaitHandler sets the handler LD Vx, K blocks on.
///
func (vm *VM) SetKeyWaitHandler(h KeyWaitHandler) {
	vm.keyWait = h
}

/// SetDisplayUpdateHandler sets the handler called when the display changes.
///
func (vm *VM) SetDisplayUpdateHandler(h DisplayUpdateHandler) {
	vm.displayUpdate = h
}

/// SetKey sets the state of a keypad key. Keys outside 0x0-0xF are ignored.
///
func (vm *VM) SetKey(key uint8, pressed bool) {
	if key < NumKeys {
		vm.keys[key] = pressed
	}
}

/// Keys returns the state of the keypad.
///
func (vm *VM) Keys() [NumKeys]bool {
	return vm.keys
}

/// Stop makes every following Step return ErrStopped until Reset.
///
func (vm *VM) Stop() {
	vm.stopped = true
}

/// Stopped is true once Stop has been called.
///
func (vm *VM) Stopped() bool {
	return vm.stopped
}

/// Step the virtual machine up to n instructions. It stops at the first
/// instruction that fails and returns its error. A *DecodeError means the
/// opcode at PC-2 wasn't recognized.
///
func (vm *VM) Step(n int) error {
	for ; n > 0; n-- {
		if vm.stopped {
			return ErrStopped
		}

		inst, err := vm.fetch()
		if err != nil {
			return vm.fault(err)
		}

		ins, err := Decode(inst)
		if err != nil {
			return vm.fault(err)
		}

		if err = vm.execute(ins); err != nil {
			return vm.fault(err)
		}

		vm.updateTimers()
	}

	return nil
}

/// fault logs an error that stopped a step and returns it.
///
func (vm *VM) fault(err error) error {
	if vm.logger != nil && err != ErrStopped {
		vm.logger.Debug("Step failed",
			log.Hex("pc", vm.pc),
			log.Err(err))
	}

	return err
}

/// fetch the next 16-bit instruction to execute.
///
func (vm *VM) fetch() (uint16, error) {
	i := uint(vm.pc)

	if i+1 >= MemorySize {
		return 0, &BoundsError{Op: "fetch", Address: i}
	}

	// advance the program counter
	vm.pc += 2

	// return the 16-bit instruction
	return uint16(vm.memory[i])<<8 | uint16(vm.memory[i+1]), nil
}

/// V returns the value of register Vx.
///
func (vm *VM) V(x uint8) byte {
	return vm.v[x&0xF]
}

/// PC returns the program counter.
///
func (vm *VM) PC() uint16 {
	return vm.pc
}

/// SP returns the number of return addresses on the stack.
///
func (vm *VM) SP() uint8 {
	return vm.sp
}

/// Stack returns stack slot i, or 0 if i isn't a valid slot.
///
func (vm *VM) Stack(i int) uint16 {
	if i < 0 || i >= StackSize {
		return 0
	}

	return vm.stack[i]
}

/// I returns the address register.
///
func (vm *VM) I() uint16 {
	return vm.i
}

/// DT returns the delay timer.
///
func (vm *VM) DT() byte {
	return vm.dt
}

/// ST returns the sound timer.
///
func (vm *VM) ST() byte {
	return vm.st
}

/// Memory returns the whole address space. The slice aliases the virtual
/// machine's memory and must not be modified.
///
func (vm *VM) Memory() []byte {
	return vm.memory[:]
}
