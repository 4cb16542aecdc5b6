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

package wavwriter

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/spf13/afero"
	"github.com/youpy/go-wav"
)

const headerSize = 44

func TestAddFrame(t *testing.T) {
	w := New(afero.NewMemMapFs(), "beep.wav")

	for i := 0; i < FrameRate; i++ {
		w.AddFrame(i%2 == 0)
	}

	assert.Equal(t, SampleRate, w.Samples())
}

func TestWriteTo(t *testing.T) {
	w := New(afero.NewMemMapFs(), "beep.wav")
	w.AddFrame(false)
	w.AddFrame(true)

	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, headerSize+w.Samples(), buf.Len())

	data := buf.Bytes()
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))

	// the first frame is silent, the second starts high
	assert.Equal(t, byte(silence), data[headerSize])
	assert.Equal(t, byte(high), data[headerSize+SampleRate/FrameRate+1])

	format, err := wav.NewReader(bytes.NewReader(data)).Format()
	assert.NoError(t, err)
	assert.Equal(t, uint16(numChannels), format.NumChannels)
	assert.Equal(t, uint32(SampleRate), format.SampleRate)
	assert.Equal(t, uint16(bitsPerSample), format.BitsPerSample)
}

func TestSquareWave(t *testing.T) {
	w := New(afero.NewMemMapFs(), "beep.wav")
	w.AddFrame(true)

	halfPeriod := SampleRate / ToneFrequency / 2
	assert.Equal(t, high, w.samples[0].Values[0])
	assert.Equal(t, high, w.samples[halfPeriod-1].Values[0])
	assert.Equal(t, low, w.samples[halfPeriod].Values[0])
	assert.Equal(t, high, w.samples[2*halfPeriod].Values[0])
}

func TestClose(t *testing.T) {
	fs := afero.NewMemMapFs()

	w := New(fs, "out/beep.wav")
	w.AddFrame(true)
	assert.NoError(t, w.Close())

	data, err := afero.ReadFile(fs, "out/beep.wav")
	assert.NoError(t, err)
	assert.Equal(t, headerSize+w.Samples(), len(data))
}
