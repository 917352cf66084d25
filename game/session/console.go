package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Result tags the launcher and session handlers use on top of the
// engine's built-in ones.
const (
	TagSuccess     = "success"
	TagFailed      = "failed"
	TagInterrupted = "interrupted"
)

// errInterrupted reports that the input stream ended while a prompt
// was still waiting for an answer.
var errInterrupted = errors.New("input interrupted")

// Answer patterns for the free-form prompts, anchored so the whole
// line has to match.
var (
	reNonBlank = regexp.MustCompile(`^.*\S.*$`)
	reAnything = regexp.MustCompile(`^.*$`)
	reConfirm  = regexp.MustCompile(`^[ynYN]?$`)
)

// console couples one input scanner with one output stream. The
// launcher and the sessions it spawns share a single console, so
// prompts and commands interleave on the same stream.
type console struct {
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewScanner(in), out: out}
}

// ask prompts until a line matches the pattern. With trim set,
// surrounding whitespace is removed before the check. Returns
// errInterrupted when the input stream ends first.
func (c *console) ask(re *regexp.Regexp, trim bool) (string, error) {
	for {
		fmt.Fprint(c.out, ":> ")
		if !c.in.Scan() {
			fmt.Fprintln(c.out, "\nProcess interrupted.")
			return "", errInterrupted
		}
		line := c.in.Text()
		if trim {
			line = strings.TrimSpace(line)
		}
		if re.MatchString(line) {
			return line, nil
		}
		fmt.Fprintln(c.out, "Invalid format, try again.")
	}
}
