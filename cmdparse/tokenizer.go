// Package cmdparse splits short device command lines such as
// "Min2 10.5" or "tmin1 12.5" into data blocks.
//
// A Tokenizer is bound to one input line. Parse locates a command name
// in the line (the first letter matches in either case) and splits the
// text that follows it into space-separated blocks. Only the space
// character separates blocks; '\r', '\n' and NUL end the line. There is
// no quoting or escaping.
//
// A Tokenizer is not safe for concurrent use.
package cmdparse

import "strings"

// Tokenizer parses commands out of a single input line and keeps the
// data blocks of the last successful locate.
type Tokenizer struct {
	line   string
	tokens []string
	found  int
}

// New returns a Tokenizer reading line. The line is never modified.
func New(line string) *Tokenizer {
	return &Tokenizer{line: line}
}

// Reset points the Tokenizer at a new line and drops any tokens kept
// from a previous parse.
func (t *Tokenizer) Reset(line string) {
	t.Release()
	t.line = line
}

// Release drops the token set of the last parse.
func (t *Tokenizer) Release() {
	t.tokens = nil
	t.found = 0
}

// Line returns the input line.
func (t *Tokenizer) Line() string {
	return t.line
}

// Parse locates command in the line and splits up to expectedBlocks
// data blocks following it.
//
// It returns CommandNotFound when the command is absent, NotEnoughData
// when the line ends before expectedBlocks blocks were seen and Ok
// otherwise. Blocks beyond expectedBlocks are not scanned. With
// expectedBlocks <= 0 only the command is located and no tokens are
// kept.
func (t *Tokenizer) Parse(command string, expectedBlocks int) Outcome {
	t.Release()

	pos, ok := FindCommand(t.line, command)
	if !ok {
		return CommandNotFound
	}
	if expectedBlocks <= 0 {
		return Ok
	}

	s := &scanner{
		rest:     t.line[pos+len(command):],
		expected: expectedBlocks,
		tokens:   make([]string, 0, expectedBlocks),
	}
	outcome := s.run()

	t.tokens = s.tokens
	t.found = s.found
	return outcome
}

// Found returns the number of data blocks seen by the last parse. It
// can be lower than the number requested when the outcome was
// NotEnoughData.
func (t *Tokenizer) Found() int {
	return t.found
}

// Len returns the number of stored tokens.
func (t *Tokenizer) Len() int {
	return len(t.tokens)
}

// Tokens returns a copy of the stored tokens.
func (t *Tokenizer) Tokens() []string {
	out := make([]string, len(t.tokens))
	copy(out, t.tokens)
	return out
}

type state int

const (
	stateSkipSpaces state = iota
	stateInToken
	stateEndBlock
	stateDone
)

// scanner is the tokenizing state machine. Every step either advances
// pos or moves to a state that does; stateDone ends the run.
type scanner struct {
	rest     string
	pos      int
	start    int
	found    int
	expected int
	eol      bool
	tokens   []string
	outcome  Outcome
}

func (s *scanner) run() Outcome {
	st := stateSkipSpaces
	for st != stateDone {
		switch st {
		case stateSkipSpaces:
			st = s.skipSpaces()
		case stateInToken:
			st = s.inToken()
		case stateEndBlock:
			st = s.endBlock()
		default:
			s.outcome = NotEnoughData
			st = stateDone
		}
	}
	return s.outcome
}

func (s *scanner) skipSpaces() state {
	for s.pos < len(s.rest) && s.rest[s.pos] == ' ' {
		s.pos++
	}
	s.start = s.pos
	if s.atEOL() {
		s.eol = true
		return stateEndBlock
	}
	s.found++
	return stateInToken
}

func (s *scanner) inToken() state {
	for {
		s.pos++
		if s.atEOL() {
			s.eol = true
			return stateEndBlock
		}
		if s.rest[s.pos] == ' ' {
			s.eol = false
			return stateEndBlock
		}
	}
}

func (s *scanner) endBlock() state {
	if n := s.pos - s.start; n > 0 {
		s.tokens = append(s.tokens, strings.Clone(s.rest[s.start:s.pos]))
	}

	if s.found < s.expected {
		if s.eol {
			s.outcome = NotEnoughData
			return stateDone
		}
		s.pos++
		return stateSkipSpaces
	}
	s.outcome = Ok
	return stateDone
}

func (s *scanner) atEOL() bool {
	if s.pos >= len(s.rest) {
		return true
	}
	switch s.rest[s.pos] {
	case 0, '\n', '\r':
		return true
	}
	return false
}
