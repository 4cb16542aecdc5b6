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

import "time"

/// TimerInterval is how often the delay and sound timers count down.
///
const TimerInterval = time.Second / 60

/// Clock tells the virtual machine what time it is. It exists so tests can
/// control timer pacing.
///
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

/// TickTimers counts both timers down once. Neither goes below 0.
///
func (vm *VM) TickTimers() {
	if vm.dt > 0 {
		vm.dt--
	}
	if vm.st > 0 {
		vm.st--
	}
}

/// updateTimers ticks the timers once if at least TimerInterval has passed
/// since the last tick.
///
func (vm *VM) updateTimers() {
	now := vm.clock.Now()

	if now.Sub(vm.lastTick) >= TimerInterval {
		vm.TickTimers()
		vm.lastTick = now
	}
}
