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

// Package wavwriter records the beeper to a WAV file, one 60 Hz frame at a
// time.
package wavwriter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/youpy/go-wav"
)

const (
	// SampleRate of the recording in Hz.
	SampleRate = 22050

	// FrameRate is how many times per second AddFrame is called.
	FrameRate = 60

	// ToneFrequency of the square wave played while the beeper is on.
	ToneFrequency = 440

	bitsPerSample = 8
	numChannels   = 1

	// 8-bit samples are unsigned, 128 is silence.
	silence = 128
	high    = silence + 64
	low     = silence - 64
)

// Writer collects beeper samples in memory until they are written out.
type Writer struct {
	fs   afero.Fs
	path string

	frames  int
	phase   int
	samples []wav.Sample
}

// New creates a Writer that saves to path on fs when closed.
func New(fs afero.Fs, path string) *Writer {
	return &Writer{
		fs:   fs,
		path: path,
	}
}

// AddFrame appends 1/60th of a second of tone, or of silence when the
// beeper is off.
func (w *Writer) AddFrame(on bool) {
	// spread the remainder so FrameRate frames are exactly SampleRate samples
	n := (w.frames+1)*SampleRate/FrameRate - w.frames*SampleRate/FrameRate
	w.frames++

	halfPeriod := SampleRate / ToneFrequency / 2

	for i := 0; i < n; i++ {
		v := silence

		if on {
			if (w.phase/halfPeriod)%2 == 0 {
				v = high
			} else {
				v = low
			}
			w.phase++
		} else {
			w.phase = 0
		}

		w.samples = append(w.samples, wav.Sample{Values: [2]int{v, v}})
	}
}

// Samples returns the number of samples recorded.
func (w *Writer) Samples() int {
	return len(w.samples)
}

// WriteTo encodes the recording as a WAV file.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	cw := &countingWriter{w: out}

	enc := wav.NewWriter(cw, uint32(len(w.samples)), numChannels, SampleRate, bitsPerSample)
	if err := enc.WriteSamples(w.samples); err != nil {
		return cw.n, fmt.Errorf("writing samples: %w", err)
	}

	return cw.n, nil
}

// Close writes the recording to its file.
func (w *Writer) Close() error {
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return err
	}

	if err := afero.WriteFile(w.fs, w.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing wav file: %w", err)
	}

	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
