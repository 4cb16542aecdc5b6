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

package config

import (
	"flag"
	"fmt"
	"io"
)

// UsageError is returned for command lines that can't be parsed.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: quartz [options] [rom file]\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags reads the options from the command line arguments, not
// including the program name.
func ParseFlags(name string, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch len(rest) {
	case 0:
	case 1:
		opts.ROM = rest[0]
	default:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after rom file, options go before the rom file", rest[1]),
		}
	}

	if opts.Scale < 1 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("invalid scale %d", opts.Scale)}
	}

	opts.Rate = ClampRate(opts.Rate)

	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.IntVar(&opts.Rate, "rate", DefaultRate, "instructions executed per frame (60 frames per second)")
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "window size multiplier")
	flags.BoolVar(&opts.Terminal, "term", false, "run in the terminal instead of a window")
	flags.StringVar(&opts.Wav, "wav", "", "record the beeper to this .wav file")
	flags.StringVar(&opts.MemViz, "memviz", "", "write a Graphviz graph of the machine state to this file on exit")
	flags.StringVar(&opts.StatsView, "statsview", "", "serve runtime statistics on this address, for example localhost:18066")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
