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
	"fmt"

	"github.com/massung/quartz/wavwriter"
	"github.com/veandco/go-sdl2/sdl"
)

/// Audio plays a square wave while the sound timer is running.
///
type Audio struct {
	device sdl.AudioDeviceID
	spec   sdl.AudioSpec

	/// frame is 1/60th of a second of tone.
	frame []byte

	on bool
}

/// NewAudio opens the default audio device for 8-bit mono output.
///
func NewAudio() (*Audio, error) {
	want := &sdl.AudioSpec{
		Freq:     wavwriter.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	a := &Audio{}

	var err error
	if a.device, err = sdl.OpenAudioDevice("", false, want, &a.spec, 0); err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	a.frame = squareWave(int(a.spec.Freq) / wavwriter.FrameRate)

	// start playing, the queue is empty until the tone is turned on
	sdl.PauseAudioDevice(a.device, false)

	return a, nil
}

/// SetTone keeps about two frames of tone queued while on. Turning it off
/// drops whatever is still queued.
///
func (a *Audio) SetTone(on bool) {
	if !on {
		if a.on {
			sdl.ClearQueuedAudio(a.device)
		}
		a.on = false
		return
	}

	a.on = true

	if sdl.GetQueuedAudioSize(a.device) < uint32(2*len(a.frame)) {
		_ = sdl.QueueAudio(a.device, a.frame)
	}
}

/// Close the audio device.
///
func (a *Audio) Close() {
	sdl.CloseAudioDevice(a.device)
}

/// squareWave returns n unsigned 8-bit samples of the beeper tone.
///
func squareWave(n int) []byte {
	buf := make([]byte, n)
	halfPeriod := wavwriter.SampleRate / wavwriter.ToneFrequency / 2

	for i := range buf {
		if (i/halfPeriod)%2 == 0 {
			buf[i] = 0xC0
		} else {
			buf[i] = 0x40
		}
	}

	return buf
}
