package sh

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/usbadda/pkg/adda"
	"github.com/robotalks/usbadda/pkg/env"
	fx "github.com/robotalks/usbadda/pkg/framework"
	"github.com/robotalks/usbadda/pkg/telemetry"
)

// Shell dispatches commands against one board session.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Config *env.Config
	Out    io.Writer
	ErrOut io.Writer

	// OpenDevice opens the board session, Config.OpenDevice by default.
	OpenDevice func() (*adda.Device, error)
	// OpenPublisher connects the MQTT publisher, from Config.MQTTURL by default.
	OpenPublisher func() (telemetry.Publisher, error)

	commands  []*Command
	device    *adda.Device
	publisher telemetry.Publisher
	reporter  *telemetry.Reporter
}

const (
	programName = "usbadda"
	prompt      = "usbadda > "
)

var (
	// flags

	interactive bool
	outputJSON  bool

	// commands
	commands = []*Command{&HelpCmd}
)

func init() {
	flag.BoolVar(&interactive, "i", interactive, "Run interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*Command) {
	commands = append(commands, cmds...)
}

// New creates a new shell with all registered commands.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: interactive,
		OutputJSON:  outputJSON,
		Config:      conf,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		commands:    commands,
	}
	s.OpenDevice = conf.OpenDevice
	s.OpenPublisher = s.openQueue
	return s
}

// Lookup finds a command by name or alias.
func (s *Shell) Lookup(name string) *Command {
	for _, cmd := range s.commands {
		if cmd.Name == name {
			return cmd
		}
		for _, alias := range cmd.Aliases {
			if alias == name {
				return cmd
			}
		}
	}
	return nil
}

// Exec runs one command line, args[0] is the command name.
func (s *Shell) Exec(ctx context.Context, args ...string) error {
	if len(args) == 0 {
		return &UsageError{Message: "command expected"}
	}
	cmd := s.Lookup(args[0])
	if cmd == nil {
		return &UsageError{Message: fmt.Sprintf("unknown command %q", args[0])}
	}
	nums, err := cmd.parseArgs(args[1:])
	if err != nil {
		return err
	}
	return cmd.Func(&Context{Context: ctx, Shell: s, Command: cmd, Args: nums})
}

// Device gets the board session, opening it on first use.
func (s *Shell) Device() (*adda.Device, error) {
	if s.device != nil {
		if err := s.device.Conn().Broken(); err != nil {
			return nil, fmt.Errorf("session broken by %v, restart required", err)
		}
		return s.device, nil
	}
	dev, err := s.OpenDevice()
	if err != nil {
		return nil, err
	}
	s.device = dev
	return dev, nil
}

// Reporter gets the MQTT reporter, connecting on first use.
func (s *Shell) Reporter() (*telemetry.Reporter, error) {
	if s.reporter != nil {
		return s.reporter, nil
	}
	pub, err := s.OpenPublisher()
	if err != nil {
		return nil, err
	}
	s.publisher = pub
	s.reporter = &telemetry.Reporter{Publisher: pub, CardID: s.Config.CardID}
	return s.reporter, nil
}

// PublisherConfigured tells whether ADC sweeps can be published.
func (s *Shell) PublisherConfigured() bool {
	return s.reporter != nil || s.Config.MQTTURL != ""
}

func (s *Shell) openQueue() (telemetry.Publisher, error) {
	if s.Config.MQTTURL == "" {
		return nil, errors.New("MQTT broker not configured, use -mqtt or USBADDA_MQTT_URL")
	}
	clientID := programName
	if id := env.MachineID(); len(id) >= 12 {
		clientID += "-" + id[:12]
	}
	q, err := telemetry.NewQueueFromURL(s.Config.MQTTURL, clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT URL: %v", err)
	}
	if err := q.Connect(); err != nil {
		return nil, fmt.Errorf("connect MQTT broker: %w", err)
	}
	return q, nil
}

// Close releases the board session and the publisher.
func (s *Shell) Close() error {
	var errs fx.AggregatedError
	if s.device != nil {
		errs.Add(s.device.Close())
		s.device = nil
	}
	if closer, ok := s.publisher.(io.Closer); ok {
		errs.Add(closer.Close())
	}
	s.publisher, s.reporter = nil, nil
	return errs.Aggregate()
}

// PrintUsage prints the usage of all commands.
func (s *Shell) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "%s - Interface with Decision-Computer 14/16bit USB data acquisition board\n", programName)
	fmt.Fprintf(w, "Usage: %s [flags] <command> [args]\n", programName)
	for _, group := range groupOrder {
		label := group + ":"
		for _, cmd := range s.commands {
			if cmd.Group != group {
				continue
			}
			fmt.Fprintf(w, "  %-5s %-24s %s\n", label, cmd.Help+":", cmd.Usage())
			label = ""
		}
	}
	fmt.Fprintln(w, "Numbers are decimal or 0x prefixed hexadecimal. Run with -help for flags.")
}

// RunInteractive runs the ishell backed interactive shell.
func (s *Shell) RunInteractive(ctx context.Context) {
	shell := ishell.New()
	shell.SetPrompt(prompt)
	for _, cmd := range s.commands {
		shell.AddCmd(s.ishellCmd(ctx, cmd))
	}
	shell.NotFound(func(c *ishell.Context) {
		c.Err(&UsageError{Message: fmt.Sprintf("unknown command %q, try help", strings.Join(c.Args, " "))})
	})
	shell.Run()
}

func (s *Shell) ishellCmd(ctx context.Context, cmd *Command) *ishell.Cmd {
	return &ishell.Cmd{
		Name:    cmd.Name,
		Aliases: cmd.Aliases,
		Help:    cmd.Usage(),
		Func: func(c *ishell.Context) {
			if err := s.Exec(ctx, append([]string{cmd.Name}, c.Args...)...); err != nil {
				c.Err(err)
			}
		},
	}
}

// Run runs a command line and returns the process exit code.
func (s *Shell) Run(ctx context.Context, args ...string) int {
	defer func() {
		if err := s.Close(); err != nil {
			glog.Errorf("close: %v", err)
		}
	}()

	if len(args) == 0 {
		if s.Interactive {
			s.RunInteractive(ctx)
			return 0
		}
		s.PrintUsage(s.ErrOut)
		return 1
	}

	err := s.Exec(ctx, args...)
	if err == nil {
		return 0
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(s.ErrOut, err)
		s.PrintUsage(s.ErrOut)
		return 1
	}
	fmt.Fprintf(s.ErrOut, "%s: %v\n", args[0], err)
	return 1
}

// HelpCmd prints usage.
var HelpCmd = Command{
	Name:       "help",
	Help:       "Print usage",
	IgnoreArgs: true,
	Func: func(c *Context) error {
		c.Shell.PrintUsage(c.Output())
		return nil
	},
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf, err := env.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code := New(conf).Run(context.Background(), flag.Args()...)
	glog.Flush()
	os.Exit(code)
}
