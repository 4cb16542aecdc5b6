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

package asm

import (
	"fmt"
	"strconv"
	"strings"
)

/// tokenType is the kind of a scanned token.
///
type tokenType uint

/// Lexical assembly tokens.
///
const (
	tokenEnd tokenType = iota
	tokenChar
	tokenLabel
	tokenRef
	tokenInstruction
	tokenIndirect
	tokenOperand
	tokenV
	tokenI
	tokenB
	tokenF
	tokenK
	tokenDT
	tokenST
	tokenLit
	tokenText
	tokenEqu
	tokenVar
)

/// A parsed, lexical token.
///
type token struct {
	typ tokenType

	// tokens can have an optional value associated with them
	val interface{}
}

/// tokenScanner splits a single, upper-cased line of source into tokens.
///
type tokenScanner struct {
	bytes []byte

	// scan position
	pos int
}

/// scanToken reads the next token.
///
func (s *tokenScanner) scanToken() token {
	for len(s.bytes) > s.pos && s.bytes[s.pos] < 33 {
		s.pos++
	}

	// if at the end, return an empty comment
	if len(s.bytes) <= s.pos {
		return token{typ: tokenEnd, val: ""}
	}

	c := s.bytes[s.pos]

	switch {
	case c == ';':
		return s.scanToEnd()
	case c == '.' && s.pos == 0:
		return s.scanLabel()
	case s.pos == 0:
		// everything else must be indented
		panic(fmt.Errorf("expected .label or indentation"))
	case c == '[':
		return s.scanIndirection()
	case c == ',':
		return s.scanOperand()
	case c == '#':
		return s.scanHexLit()
	case c == '$':
		return s.scanBinLit()
	case c == '-' || (c >= '0' && c <= '9'):
		return s.scanDecLit()
	case c >= 'A' && c <= 'Z':
		return s.scanIdentifier()
	case c == '"' || c == '\'':
		return s.scanString(c)
	}

	return s.scanChar()
}

/// scanOperands reads a list of comma-separated tokens up to the end of the
/// line.
///
func (s *tokenScanner) scanOperands() []token {
	tokens := make([]token, 0, 3)

	for t := s.scanToken(); t.typ != tokenEnd; {
		tokens = append(tokens, t)

		// get another token, are we at the end?
		if t = s.scanToken(); t.typ != tokenOperand {
			if t.typ == tokenEnd {
				break
			}

			panic(fmt.Errorf("unexpected token after operand"))
		}

		// expand the operand
		t = t.val.(token)
	}

	return tokens
}

/// scanChar reads a single character.
///
func (s *tokenScanner) scanChar() token {
	i := s.pos
	s.pos++

	return token{typ: tokenChar, val: s.bytes[i]}
}

/// scanToEnd skips the rest of the line, which is a comment.
///
func (s *tokenScanner) scanToEnd() token {
	text := string(s.bytes[s.pos:])

	s.pos = len(s.bytes)

	return token{typ: tokenEnd, val: strings.TrimSpace(strings.TrimPrefix(text, ";"))}
}

/// scanOperand reads the token after a comma.
///
func (s *tokenScanner) scanOperand() token {
	s.pos++

	t := s.scanToken()

	// make sure there was an operand
	if t.typ == tokenEnd {
		panic(fmt.Errorf("expected operand"))
	}

	return token{typ: tokenOperand, val: t}
}

/// scanLabel reads a label, which is a specific type of identifier.
///
func (s *tokenScanner) scanLabel() token {
	s.pos++

	// validate the first identifier character
	if s.pos < len(s.bytes) && s.bytes[s.pos] >= 'A' && s.bytes[s.pos] <= 'Z' {
		if id := s.scanIdentifier(); id.typ == tokenRef {
			return token{typ: tokenLabel, val: id.val}
		}
	}

	panic(fmt.Errorf("expected label"))
}

/// scanIdentifier reads an instruction, register or label reference.
///
func (s *tokenScanner) scanIdentifier() token {
	i := s.pos

	// advance to the first non-identifier character
	for ; s.pos < len(s.bytes); s.pos++ {
		c := s.bytes[s.pos]

		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			break
		}
	}

	id := string(s.bytes[i:s.pos])

	// V0 through VF
	if len(id) == 2 && id[0] == 'V' {
		if x := strings.IndexByte("0123456789ABCDEF", id[1]); x >= 0 {
			return token{typ: tokenV, val: x}
		}
	}

	switch id {
	case "I":
		return token{typ: tokenI}
	case "B":
		return token{typ: tokenB}
	case "F":
		return token{typ: tokenF}
	case "K":
		return token{typ: tokenK}
	case "D", "DT":
		return token{typ: tokenDT}
	case "S", "ST":
		return token{typ: tokenST}
	case "EQU":
		return token{typ: tokenEqu}
	case "VAR":
		return token{typ: tokenVar}
	}

	if _, ok := mnemonics[id]; ok {
		return token{typ: tokenInstruction, val: id}
	}

	return token{typ: tokenRef, val: id}
}

/// scanIndirection reads [I].
///
func (s *tokenScanner) scanIndirection() token {
	s.pos++

	// only I can be indirected
	t := s.scanToken()
	if t.typ != tokenI {
		panic(fmt.Errorf("illegal indirection"))
	}

	// the next token should close the indirection
	if c := s.scanToken(); c.typ != tokenChar || c.val.(byte) != ']' {
		panic(fmt.Errorf("illegal indirection"))
	}

	return token{typ: tokenIndirect, val: t}
}

/// scanDecLit reads a decimal literal.
///
func (s *tokenScanner) scanDecLit() token {
	i := s.pos

	// skip a unary minus negation
	if s.bytes[i] == '-' {
		s.pos++
	}

	for ; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte("0123456789", s.bytes[s.pos]) < 0 {
			break
		}
	}

	if n, err := strconv.ParseInt(string(s.bytes[i:s.pos]), 10, 32); err == nil {
		return token{typ: tokenLit, val: int(n)}
	}

	panic(fmt.Errorf("illegal decimal value: %s", string(s.bytes[i:s.pos])))
}

/// scanHexLit reads a #-prefixed hexadecimal literal.
///
func (s *tokenScanner) scanHexLit() token {
	i := s.pos

	for s.pos++; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte("0123456789ABCDEF", s.bytes[s.pos]) < 0 {
			break
		}
	}

	if n, err := strconv.ParseInt(string(s.bytes[i+1:s.pos]), 16, 32); err == nil {
		return token{typ: tokenLit, val: int(n)}
	}

	panic(fmt.Errorf("illegal hex value: %s", string(s.bytes[i:s.pos])))
}

/// scanBinLit reads a $-prefixed binary literal where '.' is a 0 bit, so
/// sprites can be drawn in the source.
///
func (s *tokenScanner) scanBinLit() token {
	i := s.pos

	for s.pos++; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte(".01", s.bytes[s.pos]) < 0 {
			break
		}
	}

	v := strings.ReplaceAll(string(s.bytes[i+1:s.pos]), ".", "0")

	if n, err := strconv.ParseInt(v, 2, 32); err == nil {
		return token{typ: tokenLit, val: int(n)}
	}

	panic(fmt.Errorf("illegal binary value: %s", string(s.bytes[i:s.pos])))
}

/// scanString reads a quoted string.
///
func (s *tokenScanner) scanString(term byte) token {
	s.pos++

	i := s.pos

	// find the terminating quotation
	for s.pos < len(s.bytes) && s.bytes[s.pos] != term {
		s.pos++
	}

	if s.pos >= len(s.bytes) {
		panic(fmt.Errorf("unterminated string"))
	}

	text := string(s.bytes[i:s.pos])

	// skip the closing quote
	s.pos++

	return token{typ: tokenText, val: text}
}
