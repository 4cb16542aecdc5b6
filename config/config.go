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

// Package config contains the command line options and the logger setup
// shared by the frontends.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// Options holds everything that can be set from the command line.
type Options struct {
	// ROM is the path of the program to run. Empty asks with a dialog.
	ROM string

	// Rate is the number of instructions executed per 60 Hz frame.
	Rate int

	// Scale is the window size multiplier for the SDL frontend.
	Scale int

	// Terminal runs in the terminal instead of an SDL window.
	Terminal bool

	// Wav records the beeper to this path when set.
	Wav string

	// MemViz writes a Graphviz dump of the machine to this path on exit.
	MemViz string

	// StatsView serves runtime statistics on this address when set.
	StatsView string

	Debug bool
	Quiet bool
}

const (
	DefaultRate  = 10
	DefaultScale = 8

	// MinRate and MaxRate bound the instructions executed per frame.
	MinRate = 1
	MaxRate = 1000
)

// ClampRate keeps an instructions per frame value within MinRate and
// MaxRate.
func ClampRate(rate int) int {
	switch {
	case rate < MinRate:
		return MinRate
	case rate > MaxRate:
		return MaxRate
	default:
		return rate
	}
}

// CreateLogger creates a logger with the level picked by the debug and
// quiet options. Debug wins if both are set.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
