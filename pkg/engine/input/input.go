package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// Script reads participant input from a line-oriented tap script:
//
//	tap X Y     pointer-down at device pixel (X, Y)
//	next        activate the Next button
//	snapshot    write a feedback snapshot
//	quit        abort the run
//
// Blank lines and lines starting with # are skipped.
type Script struct {
	scanner *bufio.Scanner
	prompt  io.Writer
	line    int
	now     func() time.Time
}

// NewScript reads commands from r. When prompt is non-nil it is written to
// before every read.
func NewScript(r io.Reader, prompt io.Writer) *Script {
	return &Script{
		scanner: bufio.NewScanner(r),
		prompt:  prompt,
		now:     time.Now,
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Line returns the number of the last line read.
func (s *Script) Line() int {
	return s.line
}

// Next returns the next command as a raw script event. It returns io.EOF
// when the script ends.
func (s *Script) Next(promptText string) (RawInput, error) {
	for {
		if s.prompt != nil {
			fmt.Fprint(s.prompt, promptText)
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return RawInput{}, fmt.Errorf("read script: %w", err)
			}
			return RawInput{}, io.EOF
		}
		s.line++

		text := strings.TrimSpace(s.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return s.parse(text)
	}
}

func (s *Script) parse(text string) (RawInput, error) {
	fields := strings.Fields(text)
	raw := RawInput{
		Device:    DeviceScript,
		Code:      strings.ToLower(fields[0]),
		Timestamp: s.now(),
	}

	switch raw.Code {
	case "tap":
		if len(fields) != 3 {
			return RawInput{}, fmt.Errorf("line %d: tap needs X and Y", s.line)
		}
		x, errX := strconv.ParseFloat(fields[1], 64)
		y, errY := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil {
			return RawInput{}, fmt.Errorf("line %d: bad coordinates %q %q", s.line, fields[1], fields[2])
		}
		raw.X, raw.Y = x, y
	case "next", "quit", "snapshot":
		if len(fields) != 1 {
			return RawInput{}, fmt.Errorf("line %d: %s takes no arguments", s.line, raw.Code)
		}
	default:
		return RawInput{}, fmt.Errorf("line %d: unknown command %q", s.line, fields[0])
	}
	return raw, nil
}
