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

/// execute a single decoded instruction.
///
func (vm *VM) execute(ins Instruction) error {
	switch ins := ins.(type) {
	case Cls:
		vm.cls()
	case Ret:
		return vm.ret()
	case Jump:
		vm.jump(ins.Addr)
	case Call:
		return vm.call(ins.Addr)
	case SkipIf:
		vm.skipWhen(vm.v[ins.X] == ins.Byte)
	case SkipIfNot:
		vm.skipWhen(vm.v[ins.X] != ins.Byte)
	case SkipIfXY:
		vm.skipWhen(vm.v[ins.X] == vm.v[ins.Y])
	case SkipIfNotXY:
		vm.skipWhen(vm.v[ins.X] != vm.v[ins.Y])
	case LoadX:
		vm.v[ins.X] = ins.Byte
	case AddX:
		vm.v[ins.X] += ins.Byte
	case LoadXY:
		vm.v[ins.X] = vm.v[ins.Y]
	case Or:
		vm.v[ins.X] |= vm.v[ins.Y]
	case And:
		vm.v[ins.X] &= vm.v[ins.Y]
	case Xor:
		vm.v[ins.X] ^= vm.v[ins.Y]
	case AddXY:
		vm.addXY(ins.X, ins.Y)
	case SubXY:
		vm.subXY(ins.X, ins.Y)
	case Shr:
		vm.shr(ins.X)
	case SubYX:
		vm.subYX(ins.X, ins.Y)
	case Shl:
		vm.shl(ins.X)
	case LoadI:
		vm.i = ins.Addr
	case JumpV0:
		vm.jump(ins.Addr + uint16(vm.v[0]))
	case Rnd:
		vm.v[ins.X] = byte(vm.rand.Intn(0x100)) & ins.Byte
	case Drw:
		return vm.drw(ins.X, ins.Y, ins.N)
	case SkipIfPressed:
		return vm.skipIfKey(ins.X, true)
	case SkipIfNotPressed:
		return vm.skipIfKey(ins.X, false)
	case LoadXDT:
		vm.v[ins.X] = vm.dt
	case LoadXK:
		return vm.loadXK(ins.X)
	case LoadDTX:
		vm.dt = vm.v[ins.X]
	case LoadSTX:
		vm.st = vm.v[ins.X]
	case AddIX:
		vm.i += uint16(vm.v[ins.X])
	case LoadF:
		vm.i = uint16(vm.v[ins.X]) * 5
	case LoadB:
		return vm.loadB(ins.X)
	case SaveRegs:
		return vm.saveRegs(ins.X)
	case LoadRegs:
		return vm.loadRegs(ins.X)
	default:
		return fmt.Errorf("unhandled instruction %T", ins)
	}

	return nil
}

/// return from subroutine.
///
func (vm *VM) ret() error {
	if vm.sp == 0 {
		return ErrStackUnderflow
	}

	// pre-decrement, then restore program counter
	vm.sp--
	vm.pc = vm.stack[vm.sp]

	return nil
}

/// call a subroutine at address.
///
func (vm *VM) call(address uint16) error {
	if int(vm.sp) >= StackSize {
		return ErrStackOverflow
	}

	// push program counter onto stack
	vm.stack[vm.sp] = vm.pc
	vm.sp++

	// jump to address
	vm.pc = address

	return nil
}

/// jump to address.
///
func (vm *VM) jump(address uint16) {
	vm.pc = address
}

/// skip the next instruction if cond holds.
///
func (vm *VM) skipWhen(cond bool) {
	if cond {
		vm.pc += 2
	}
}

/// skip the next instruction if key(vx) is in the given state.
///
func (vm *VM) skipIfKey(x uint8, pressed bool) error {
	key := vm.v[x]

	if key >= NumKeys {
		return fmt.Errorf("V%X = #%02X: %w", x, key, ErrKeyBounds)
	}

	vm.skipWhen(vm.keys[key] == pressed)

	return nil
}

/// add vy to vx and set carry.
///
func (vm *VM) addXY(x, y uint8) {
	r := uint16(vm.v[x]) + uint16(vm.v[y])

	if r&0x100 != 0 {
		vm.v[FlagRegister] = 1
	} else {
		vm.v[FlagRegister] = 0
	}

	vm.v[x] = byte(r)
}

/// subtract vy from vx, set carry if vx > vy.
///
func (vm *VM) subXY(x, y uint8) {
	vx, vy := vm.v[x], vm.v[y]

	if vx > vy {
		vm.v[FlagRegister] = 1
	} else {
		vm.v[FlagRegister] = 0
	}

	vm.v[x] = vx - vy
}

/// subtract vx from vy and store in vx, set carry if vy > vx.
///
func (vm *VM) subYX(x, y uint8) {
	vx, vy := vm.v[x], vm.v[y]

	if vy > vx {
		vm.v[FlagRegister] = 1
	} else {
		vm.v[FlagRegister] = 0
	}

	vm.v[x] = vy - vx
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *VM) shr(x uint8) {
	vx := vm.v[x]

	vm.v[FlagRegister] = vx & 1
	vm.v[x] = vx >> 1
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *VM) shl(x uint8) {
	vx := vm.v[x]

	vm.v[FlagRegister] = vx >> 7
	vm.v[x] = vx << 1
}

/// load vx with next key hit (blocking).
///
func (vm *VM) loadXK(x uint8) error {
	if vm.keyWait == nil {
		return ErrNoKeyWaitHandler
	}

	key := vm.keyWait()

	// the handler stopped the machine instead of returning a key
	if vm.stopped {
		return ErrStopped
	}

	vm.v[x] = key

	return nil
}

/// load address with BCD of vx.
///
func (vm *VM) loadB(x uint8) error {
	i := uint(vm.i)

	if i+2 >= MemorySize {
		return &BoundsError{Op: "bcd", Address: maxUint(i, MemorySize)}
	}

	n := vm.v[x]

	vm.memory[i+0] = n / 100
	vm.memory[i+1] = n / 10 % 10
	vm.memory[i+2] = n % 10

	return nil
}

/// save registers v0..vx to I.
///
func (vm *VM) saveRegs(x uint8) error {
	i := uint(vm.i)

	if i+uint(x) >= MemorySize {
		return &BoundsError{Op: "store", Address: maxUint(i, MemorySize)}
	}

	copy(vm.memory[i:i+uint(x)+1], vm.v[:x+1])

	return nil
}

/// load registers v0..vx from I.
///
func (vm *VM) loadRegs(x uint8) error {
	i := uint(vm.i)

	if i+uint(x) >= MemorySize {
		return &BoundsError{Op: "load", Address: maxUint(i, MemorySize)}
	}

	copy(vm.v[:x+1], vm.memory[i:i+uint(x)+1])

	return nil
}
