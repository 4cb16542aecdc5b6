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

package emulator

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/massung/quartz/chip8"
	"github.com/massung/quartz/config"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeFrontend struct {
	// frames is how many times ProcessEvents returns true.
	frames int

	// onEvents is called with the input on every ProcessEvents.
	onEvents func(in Input)

	refreshes int
	tones     []bool

	keys    []uint8
	waits   int
	waitCtx context.Context
}

func (f *fakeFrontend) ProcessEvents(in Input) bool {
	if f.frames <= 0 {
		return false
	}
	f.frames--

	if f.onEvents != nil {
		f.onEvents(in)
	}
	return true
}

func (f *fakeFrontend) Refresh(display []byte) error {
	f.refreshes++
	return nil
}

func (f *fakeFrontend) SetTone(on bool) {
	f.tones = append(f.tones, on)
}

func (f *fakeFrontend) WaitKey(ctx context.Context) (uint8, bool) {
	f.waits++
	f.waitCtx = ctx

	if len(f.keys) == 0 {
		return 0, false
	}

	key := f.keys[0]
	f.keys = f.keys[1:]
	return key, true
}

type fakeRecorder struct {
	frames []bool
}

func (r *fakeRecorder) AddFrame(on bool) {
	r.frames = append(r.frames, on)
}

func newTestEmulator(t *testing.T, program []byte, frontend Frontend, opts ...Option) *Emulator {
	t.Helper()

	logger := log.NewTestLogger(t)

	vm := chip8.New(
		chip8.WithRand(rand.New(rand.NewSource(1))),
		chip8.WithLogger(logger),
	)
	assert.NoError(t, vm.LoadMemory(program))

	return New(vm, frontend, append([]Option{WithLogger(logger)}, opts...)...)
}

// quietLogger doesn't fail the test on the error records of a fault.
func quietLogger() Option {
	return WithLogger(config.CreateLogger(false, true))
}

// loop is a program that spins forever.
var loop = []byte{0x12, 0x00} // JP #200

func TestFrameRate(t *testing.T) {
	frontend := &fakeFrontend{}
	e := newTestEmulator(t, []byte{
		0x70, 0x01, // ADD V0, #01
		0x12, 0x00, // JP #200
	}, frontend, WithRate(6))

	assert.NoError(t, e.Frame())
	assert.Equal(t, byte(3), e.VM().V(0))
	assert.Equal(t, HistorySize, cap(e.History().buf))
	assert.Equal(t, 6, e.History().Len())
	assert.Equal(t, []string{"0200 - ADD    V0, #01", "0202 - JP     #0200"}, e.History().Window(2))
}

func TestFrameRefreshesWhenDirty(t *testing.T) {
	frontend := &fakeFrontend{}
	e := newTestEmulator(t, []byte{
		0x00, 0xE0, // CLS
		0x12, 0x02, // JP #202
	}, frontend, WithRate(1))

	// the first frame always draws
	assert.NoError(t, e.Frame())
	assert.Equal(t, 1, frontend.refreshes)

	assert.NoError(t, e.Frame())
	assert.Equal(t, 1, frontend.refreshes)

	e.Reset()
	assert.NoError(t, e.Frame())
	assert.Equal(t, 2, frontend.refreshes)
}

func TestFrameTone(t *testing.T) {
	frontend := &fakeFrontend{}
	recorder := &fakeRecorder{}
	e := newTestEmulator(t, []byte{
		0x60, 0x05, // LD V0, #05
		0xF0, 0x18, // LD ST, V0
		0x12, 0x04, // JP #204
	}, frontend, WithRate(1), WithRecorder(recorder))

	assert.NoError(t, e.Frame())
	assert.NoError(t, e.Frame())

	assert.Equal(t, []bool{false, true}, frontend.tones)
	assert.Equal(t, []bool{false, true}, recorder.frames)
}

func TestFrameFault(t *testing.T) {
	frontend := &fakeFrontend{}
	e := newTestEmulator(t, []byte{0x00, 0xEE}, frontend, quietLogger()) // RET

	err := e.Frame()
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Equal(t, []string{"0200 - RET"}, e.History().Window(HistorySize))
	assert.Equal(t, 0, frontend.refreshes)
}

func TestPauseAndStep(t *testing.T) {
	frontend := &fakeFrontend{}
	e := newTestEmulator(t, loop, frontend)

	// stepping does nothing unless paused
	e.StepOnce()
	assert.False(t, e.step)

	e.TogglePause()
	assert.True(t, e.Paused())

	assert.NoError(t, e.Frame())
	assert.Equal(t, 0, e.History().Len())

	e.StepOnce()
	assert.NoError(t, e.Frame())
	assert.Equal(t, 1, e.History().Len())

	assert.NoError(t, e.Frame())
	assert.Equal(t, 1, e.History().Len())

	e.TogglePause()
	assert.False(t, e.Paused())
	assert.NoError(t, e.Frame())
	assert.Equal(t, 1+config.DefaultRate, e.History().Len())
}

func TestPause(t *testing.T) {
	e := newTestEmulator(t, loop, &fakeFrontend{})

	e.Pause()
	assert.True(t, e.Paused())

	// pausing again doesn't resume
	e.Pause()
	assert.True(t, e.Paused())

	e.Reset()
	assert.True(t, e.Paused())
	assert.NoError(t, e.Frame())
	assert.Equal(t, 0, e.History().Len())
}

func TestSpeed(t *testing.T) {
	e := newTestEmulator(t, loop, &fakeFrontend{}, WithRate(8))

	e.Faster()
	assert.Equal(t, 16, e.Rate())

	e.Slower()
	e.Slower()
	e.Slower()
	e.Slower()
	assert.Equal(t, 1, e.Rate())

	e.Slower()
	assert.Equal(t, config.MinRate, e.Rate())

	for i := 0; i < 20; i++ {
		e.Faster()
	}
	assert.Equal(t, config.MaxRate, e.Rate())

	assert.Equal(t, config.MaxRate, newTestEmulator(t, loop, &fakeFrontend{}, WithRate(5000)).Rate())
}

func TestSetKey(t *testing.T) {
	e := newTestEmulator(t, loop, &fakeFrontend{})

	e.SetKey(0xA, true)
	assert.True(t, e.VM().Keys()[0xA])

	e.SetKey(0xA, false)
	assert.False(t, e.VM().Keys()[0xA])
}

func TestRun(t *testing.T) {
	pressed := 0
	frontend := &fakeFrontend{
		frames: 3,
		onEvents: func(in Input) {
			in.SetKey(0x1, true)
			pressed++
		},
	}
	e := newTestEmulator(t, loop, frontend, WithRate(2))

	assert.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, pressed)
	assert.Equal(t, 6, e.History().Len())
	assert.True(t, e.VM().Keys()[0x1])
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	frontend := &fakeFrontend{
		frames: 100,
		onEvents: func(in Input) {
			cancel()
		},
	}
	e := newTestEmulator(t, loop, frontend)

	err := e.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunFault(t *testing.T) {
	frontend := &fakeFrontend{frames: 10}
	e := newTestEmulator(t, []byte{0xFF, 0xFF}, frontend, quietLogger())

	err := e.Run(context.Background())

	var decodeErr *chip8.DecodeError
	assert.True(t, errors.As(err, &decodeErr))

	// the last frame stays up until the user quits
	assert.Equal(t, 0, frontend.frames)
	assert.Equal(t, 1, frontend.refreshes)
	assert.Equal(t, []bool{false}, frontend.tones)
	assert.Equal(t, []string{"0200 - ?? #FFFF"}, e.History().Window(HistorySize))
}

func TestRunFaultCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	frontend := &fakeFrontend{
		frames: 10,
		onEvents: func(in Input) {
			cancel()
		},
	}
	e := newTestEmulator(t, []byte{0x00, 0xEE}, frontend, quietLogger())

	err := e.Run(ctx)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
}

func TestRunFaultReset(t *testing.T) {
	var calls int

	frontend := &fakeFrontend{frames: 10}
	frontend.onEvents = func(in Input) {
		calls++
		if calls == 4 {
			in.Reset()
		}
	}
	e := newTestEmulator(t, []byte{0x00, 0xEE}, frontend, quietLogger())

	err := e.Run(context.Background())
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.True(t, errors.Is(e.Halted(), chip8.ErrStackUnderflow))

	// the reset ran the program again, which faulted again
	assert.Equal(t, 2, frontend.refreshes)
}

func TestWaitKey(t *testing.T) {
	ctx := context.Background()
	frontend := &fakeFrontend{
		frames: 1,
		keys:   []uint8{0x7},
	}
	e := newTestEmulator(t, []byte{
		0xF3, 0x0A, // LD V3, K
		0x12, 0x02, // JP #202
	}, frontend)

	assert.NoError(t, e.Run(ctx))
	assert.Equal(t, 1, frontend.waits)
	assert.Equal(t, ctx, frontend.waitCtx)
	assert.Equal(t, byte(0x7), e.VM().V(3))
}

func TestWaitKeyQuit(t *testing.T) {
	frontend := &fakeFrontend{frames: 10}
	e := newTestEmulator(t, []byte{
		0xF3, 0x0A, // LD V3, K
	}, frontend)

	// quitting while waiting on a key is not a fault
	assert.NoError(t, e.Run(context.Background()))
	assert.True(t, e.VM().Stopped())
	assert.Equal(t, 1, frontend.waits)
}
