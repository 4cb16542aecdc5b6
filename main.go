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

// Package main implements a CHIP-8 emulator with an SDL window or a
// terminal frontend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/gdamore/tcell"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/massung/quartz/chip8"
	"github.com/massung/quartz/config"
	"github.com/massung/quartz/emulator"
	"github.com/massung/quartz/rom"
	"github.com/massung/quartz/terminal"
	"github.com/massung/quartz/wavwriter"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
	"github.com/sqweek/dialog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// SDL must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			printBanner(os.Stderr)
			fmt.Fprintf(os.Stderr, "%s\n\n", err)
			usageErr.ShowUsage(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	// the terminal frontend owns the screen, only errors get through
	logger := config.CreateLogger(opts.Debug, opts.Quiet || opts.Terminal)

	if !opts.Quiet && !opts.Terminal {
		printBanner(os.Stdout)
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(w *os.File) {
	fmt.Fprintln(w, "[---------------------------]")
	fmt.Fprintln(w, "[ quartz - CHIP-8 emulator  ]")
	fmt.Fprintf(w, "[---------------------------]\n\n")
	fmt.Fprintf(w, "version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	fs := afero.NewOsFs()

	path := opts.ROM
	if path == "" {
		var err error
		if path, err = chooseROM(); err != nil {
			return err
		}
	}

	program, err := rom.Load(fs, path)
	if err != nil {
		return err
	}

	vm := chip8.New(chip8.WithLogger(logger))
	if err := vm.LoadMemory(program); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	logger.Info("Loaded ROM", log.String("path", path), log.Int("size", len(program)))

	if opts.StatsView != "" {
		startStatsView(logger, opts.StatsView)
	}

	frontend, closeFrontend, err := openFrontend(vm, logger, opts)
	if err != nil {
		return err
	}
	defer closeFrontend()

	emuOpts := []emulator.Option{
		emulator.WithRate(opts.Rate),
		emulator.WithLogger(logger),
	}

	if opts.Wav != "" {
		recorder := wavwriter.New(fs, opts.Wav)
		defer func() {
			if err := recorder.Close(); err != nil {
				logger.Error("Saving recording failed", log.Err(err))
			}
		}()

		emuOpts = append(emuOpts, emulator.WithRecorder(recorder))
	}

	if opts.MemViz != "" {
		defer func() {
			if err := WriteMemViz(fs, opts.MemViz, vm); err != nil {
				logger.Error("Dumping state failed", log.Err(err))
			}
		}()
	}

	err = emulator.New(vm, frontend, emuOpts...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

/// openFrontend creates the terminal or SDL frontend and a func to close it.
///
func openFrontend(vm *chip8.VM, logger *log.Logger, opts config.Options) (emulator.Frontend, func(), error) {
	if opts.Terminal {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, nil, fmt.Errorf("opening terminal: %w", err)
		}

		term, err := terminal.New(screen)
		if err != nil {
			return nil, nil, err
		}

		return term, term.Close, nil
	}

	screen, err := NewScreen(vm, logger, opts.Scale, opts.MemViz)
	if err != nil {
		return nil, nil, err
	}

	return screen, screen.Close, nil
}

/// chooseROM asks for a ROM file with a native dialog.
///
func chooseROM() (string, error) {
	path, err := dialog.File().
		Filter("CHIP-8 ROM", "ch8", "c8").
		Filter("All files", "*").
		Title("Load ROM").
		Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", errors.New("no rom file given")
		}
		return "", fmt.Errorf("choosing rom: %w", err)
	}

	return path, nil
}

/// startStatsView serves runtime statistics in the background.
///
func startStatsView(logger *log.Logger, addr string) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()

	go mgr.Start()

	logger.Info("Stats server running", log.String("url", "http://"+addr+"/debug/statsview"))
}
