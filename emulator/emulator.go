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

// Package emulator runs a CHIP-8 virtual machine against a frontend at
// 60 frames per second.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/massung/quartz/chip8"
	"github.com/massung/quartz/config"
	"github.com/retroenv/retrogolib/log"
)

// HistorySize is the number of executed instructions reported on a fault.
const HistorySize = 16

// FrameInterval is the time between two frames.
const FrameInterval = chip8.TimerInterval

// Frontend shows the display, plays the tone and reads the keyboard.
type Frontend interface {
	// ProcessEvents handles pending input. It returns false once the user
	// asked to quit.
	ProcessEvents(in Input) bool

	// Refresh shows the RGB framebuffer.
	Refresh(display []byte) error

	// SetTone turns the beeper on or off.
	SetTone(on bool)

	// WaitKey blocks until a keypad key is pressed. It returns false if the
	// user quit or ctx was cancelled first.
	WaitKey(ctx context.Context) (uint8, bool)
}

// Input is what a frontend can do in response to the keyboard.
type Input interface {
	SetKey(key uint8, pressed bool)
	TogglePause()
	Pause()
	StepOnce()
	Reset()
	Faster()
	Slower()
}

// Recorder gets the beeper state once per frame.
type Recorder interface {
	AddFrame(on bool)
}

// Emulator drives a virtual machine one frame at a time.
type Emulator struct {
	vm       *chip8.VM
	frontend Frontend
	logger   *log.Logger
	recorder Recorder
	history  *History

	// rate is the number of instructions executed per frame.
	rate int

	paused bool

	// step runs a single instruction on the next frame while paused.
	step bool

	// dirty is set by the display update handler.
	dirty bool

	// halted is the fault that stopped execution. The last frame stays up
	// until the user quits or resets.
	halted error

	// ctx is the context of the running loop, used while waiting on a key.
	ctx context.Context
}

// Option configures an Emulator created by New.
type Option func(*Emulator)

// WithRate sets the number of instructions executed per frame.
func WithRate(rate int) Option {
	return func(e *Emulator) {
		e.rate = config.ClampRate(rate)
	}
}

// WithRecorder records the beeper state every frame.
func WithRecorder(r Recorder) Option {
	return func(e *Emulator) {
		e.recorder = r
	}
}

// WithLogger sets the logger for faults and user actions.
func WithLogger(logger *log.Logger) Option {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// New creates an emulator and installs its handlers on vm.
func New(vm *chip8.VM, frontend Frontend, opts ...Option) *Emulator {
	e := &Emulator{
		vm:       vm,
		frontend: frontend,
		history:  NewHistory(HistorySize),
		rate:     config.DefaultRate,
		dirty:    true,
		ctx:      context.Background(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = config.CreateLogger(false, true)
	}

	vm.SetDisplayUpdateHandler(func() {
		e.dirty = true
	})
	vm.SetKeyWaitHandler(e.waitKey)

	return e
}

// Run executes frames until the user quits or ctx is cancelled. After a
// virtual machine fault the last frame stays on screen and nothing runs
// until a reset. The fault is returned once the user quits.
func (e *Emulator) Run(ctx context.Context) error {
	e.ctx = ctx
	defer func() {
		e.ctx = context.Background()
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for e.frontend.ProcessEvents(e) {
		if e.halted == nil {
			if err := e.Frame(); err != nil {
				if errors.Is(err, chip8.ErrStopped) {
					return ctx.Err()
				}
				if err := e.halt(err); err != nil {
					return err
				}
			}
		}

		select {
		case <-ctx.Done():
			if e.halted != nil {
				return e.halted
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return e.halted
}

// halt stops execution on err, showing whatever was drawn before it.
func (e *Emulator) halt(err error) error {
	e.halted = err
	e.frontend.SetTone(false)

	if refreshErr := e.refresh(); refreshErr != nil {
		return refreshErr
	}

	e.logger.Info("Halted, reset or quit")
	return nil
}

// Frame runs one frame: the instructions, then the display and the tone.
func (e *Emulator) Frame() error {
	if err := e.execute(); err != nil {
		if !errors.Is(err, chip8.ErrStopped) {
			e.fault(err)
		}
		return err
	}

	if err := e.refresh(); err != nil {
		return err
	}

	on := e.vm.ST() > 0
	e.frontend.SetTone(on)

	if e.recorder != nil {
		e.recorder.AddFrame(on)
	}

	return nil
}

// refresh the frontend if the display changed.
func (e *Emulator) refresh() error {
	if !e.dirty {
		return nil
	}

	e.dirty = false

	if err := e.frontend.Refresh(e.vm.Display()); err != nil {
		return fmt.Errorf("refreshing display: %w", err)
	}

	return nil
}

// execute the instructions for this frame, logging each to the history.
func (e *Emulator) execute() error {
	n := e.rate

	if e.paused {
		if !e.step {
			return nil
		}

		e.step = false
		n = 1
	}

	for ; n > 0; n-- {
		e.history.Log(e.vm.Disassemble(e.vm.PC()))

		if err := e.vm.Step(1); err != nil {
			return err
		}
	}

	return nil
}

// fault logs err along with the instructions that led up to it.
func (e *Emulator) fault(err error) {
	e.logger.Error("Virtual machine fault",
		log.Err(err),
		log.Hex("pc", e.vm.PC()),
		log.Hex("i", e.vm.I()),
		log.Uint8("sp", e.vm.SP()))

	for _, line := range e.history.Window(HistorySize) {
		e.logger.Error("Trace", log.String("instruction", line))
	}
}

// waitKey is the virtual machine's key wait handler.
func (e *Emulator) waitKey() byte {
	key, ok := e.frontend.WaitKey(e.ctx)
	if !ok {
		e.vm.Stop()
		return 0
	}

	return key
}

// Rate returns the number of instructions executed per frame.
func (e *Emulator) Rate() int {
	return e.rate
}

// Paused is true while execution is paused.
func (e *Emulator) Paused() bool {
	return e.paused
}

// Halted returns the fault that stopped execution, or nil while running.
func (e *Emulator) Halted() error {
	return e.halted
}

// History returns the recently executed instructions.
func (e *Emulator) History() *History {
	return e.history
}

// VM returns the virtual machine being run.
func (e *Emulator) VM() *chip8.VM {
	return e.vm
}

// SetKey presses or releases a keypad key.
func (e *Emulator) SetKey(key uint8, pressed bool) {
	e.vm.SetKey(key, pressed)
}

// TogglePause pauses or resumes execution.
func (e *Emulator) TogglePause() {
	e.paused = !e.paused

	if e.paused {
		e.logger.Info("Paused", log.Hex("pc", e.vm.PC()))
	} else {
		e.logger.Info("Resumed")
	}
}

// Pause stops execution if it is running.
func (e *Emulator) Pause() {
	if !e.paused {
		e.TogglePause()
	}
}

// StepOnce runs a single instruction on the next frame. It does nothing
// unless paused.
func (e *Emulator) StepOnce() {
	if e.paused {
		e.step = true
	}
}

// Reset restarts the loaded program, also after a fault.
func (e *Emulator) Reset() {
	e.vm.Reset()
	e.history.Clear()
	e.dirty = true
	e.halted = nil

	e.logger.Info("Reset")
}

// Faster doubles the instructions executed per frame.
func (e *Emulator) Faster() {
	e.rate = config.ClampRate(e.rate * 2)
	e.logger.Info("Speed changed", log.Int("rate", e.rate))
}

// Slower halves the instructions executed per frame.
func (e *Emulator) Slower() {
	e.rate = config.ClampRate(e.rate / 2)
	e.logger.Info("Speed changed", log.Int("rate", e.rate))
}
