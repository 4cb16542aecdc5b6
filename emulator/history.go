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

import "strings"

/// History keeps the most recent lines written to it, dropping the oldest
/// once full. The emulator logs each executed instruction to it so a fault
/// can be reported with the code that led up to it.
///
type History struct {
	// buf is a ring of lines, next is where the next line goes.
	buf  []string
	next int

	// full is set once the ring has wrapped.
	full bool
}

/// NewHistory creates a History holding up to size lines.
///
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}

	return &History{
		buf: make([]string, size),
	}
}

/// Log adds a new line.
///
func (h *History) Log(s ...string) {
	h.buf[h.next] = strings.Join(s, " ")
	h.next++

	if h.next == len(h.buf) {
		h.next = 0
		h.full = true
	}
}

/// Len returns the number of lines held.
///
func (h *History) Len() int {
	if h.full {
		return len(h.buf)
	}
	return h.next
}

/// Window returns up to the last n lines, oldest first.
///
func (h *History) Window(n int) []string {
	if n > h.Len() {
		n = h.Len()
	}
	if n <= 0 {
		return nil
	}

	lines := make([]string, n)

	// walk back from the newest line
	start := h.next - n
	if start < 0 {
		start += len(h.buf)
	}

	for i := range lines {
		lines[i] = h.buf[(start+i)%len(h.buf)]
	}

	return lines
}

/// Clear drops every line.
///
func (h *History) Clear() {
	for i := range h.buf {
		h.buf[i] = ""
	}

	h.next = 0
	h.full = false
}
