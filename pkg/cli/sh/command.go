package sh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robotalks/usbadda/pkg/adda"
	"github.com/robotalks/usbadda/pkg/telemetry"
)

// Command groups, in the order they are listed in usage.
const (
	GroupDIO       = "DIO"
	GroupADC       = "ADC"
	GroupDAC       = "DAC"
	GroupTelemetry = "MQTT"
)

var groupOrder = []string{GroupDIO, GroupADC, GroupDAC, GroupTelemetry}

// Command is a command of the shell.
type Command struct {
	Name    string
	Aliases []string
	Group   string
	Help    string
	// Args names the required numeric arguments for usage, e.g. "<0-4>".
	Args []string
	// OptArgs names the optional numeric arguments following Args.
	OptArgs []string
	// IgnoreArgs skips argument parsing, any arguments are accepted.
	IgnoreArgs bool
	Func    func(*Context) error
}

// Usage returns the command line form of the command.
func (c *Command) Usage() string {
	s := c.Name
	for _, a := range c.Args {
		s += " " + a
	}
	for _, a := range c.OptArgs {
		s += " [" + a + "]"
	}
	return s
}

// Context is passed to Command.Func.
type Context struct {
	context.Context
	Shell   *Shell
	Command *Command
	// Args are the parsed numeric arguments. Absent optional arguments
	// are not included.
	Args []int
}

// Arg gets argument n, or def if absent.
func (c *Context) Arg(n, def int) int {
	if n < len(c.Args) {
		return c.Args[n]
	}
	return def
}

// Device gets the board session, opening it on first use.
func (c *Context) Device() (*adda.Device, error) {
	return c.Shell.Device()
}

// Reporter gets the MQTT reporter, connecting on first use.
func (c *Context) Reporter() (*telemetry.Reporter, error) {
	return c.Shell.Reporter()
}

// Output gets the writer for results.
func (c *Context) Output() io.Writer {
	return c.Shell.Out
}

// Result prints a result, text in plain mode or obj as JSON.
func (c *Context) Result(text, obj interface{}) error {
	if c.Shell.OutputJSON {
		out, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.Shell.Out, string(out))
		return err
	}
	_, err := fmt.Fprintln(c.Shell.Out, text)
	return err
}

// UsageError indicates the command line is invalid.
type UsageError struct {
	Message string
}

// Error implements error.
func (e *UsageError) Error() string {
	return e.Message
}

// ParseNumber parses a decimal or 0x prefixed hexadecimal integer.
// A leading zero on a decimal number is rejected rather than read as octal.
func ParseNumber(s string) (int, error) {
	digits, neg := s, false
	if strings.HasPrefix(digits, "-") {
		digits, neg = digits[1:], true
	}
	base := 10
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits, base = digits[2:], 16
	} else if len(digits) > 1 && digits[0] == '0' {
		return 0, invalidNumber(s)
	}
	n, err := strconv.ParseUint(digits, base, strconv.IntSize-1)
	if err != nil {
		return 0, invalidNumber(s)
	}
	if neg {
		return -int(n), nil
	}
	return int(n), nil
}

func invalidNumber(s string) error {
	return &UsageError{Message: fmt.Sprintf("invalid number %q", s)}
}

func (c *Command) parseArgs(args []string) ([]int, error) {
	if c.IgnoreArgs {
		return nil, nil
	}
	if len(args) < len(c.Args) || len(args) > len(c.Args)+len(c.OptArgs) {
		return nil, &UsageError{Message: fmt.Sprintf("usage: %s", c.Usage())}
	}
	nums := make([]int, len(args))
	for n, arg := range args {
		num, err := ParseNumber(arg)
		if err != nil {
			return nil, err
		}
		nums[n] = num
	}
	return nums, nil
}
