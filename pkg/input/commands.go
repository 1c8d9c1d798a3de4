package input

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/robotalks/quadlink/pkg/flight"
)

var (
	// ErrUnknownCommand indicates the command line is not recognized.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage indicates invalid arguments.
	ErrUsage = errors.New("usage")
)

// Command is a console command.
type Command struct {
	Name    string
	Aliases []string
	Help    string
	Func    func(args []string) (string, error)
}

// Interpreter executes console commands against a Layer.
// It's shared by the interactive console and remote command intake.
type Interpreter struct {
	Layer *Layer
	// Status renders the session status, optional.
	Status func() string
	// Quit requests the session to end, optional.
	Quit func()

	commands map[string]*Command
	names    []string
}

// NewInterpreter creates an Interpreter.
func NewInterpreter(layer *Layer) *Interpreter {
	in := &Interpreter{Layer: layer, commands: make(map[string]*Command)}
	in.add(
		in.command("flight", "enter flight mode", flight.EnterFlightMode, "f"),
		in.command("land", "exit flight mode", flight.ExitFlightMode),
		in.command("ypr", "toggle yaw/pitch/roll telemetry", flight.ToggleTelemetry),
		in.command("level", "level the quad", flight.LevelQuad),
		in.command("test", "run motor test", flight.RunTest),
		in.command("done", "finish the current test", flight.Done),
		in.command("kill", "terminate, throttle to zero", flight.Terminate),
		&Command{Name: "pid", Help: "BYTE... change PID gain", Func: in.pid},
		in.control(flight.Yaw), in.control(flight.Pitch),
		in.control(flight.Roll), in.control(flight.Throttle),
		&Command{Name: "key", Aliases: []string{"down"}, Help: "KEY press a mapped key", Func: in.key(true)},
		&Command{Name: "up", Help: "KEY release a mapped key", Func: in.key(false)},
		&Command{Name: "status", Aliases: []string{"stats"}, Help: "show session status", Func: in.status},
		&Command{Name: "quit", Help: "end the session", Func: in.quit},
	)
	return in
}

func (in *Interpreter) add(cmds ...*Command) {
	for _, cmd := range cmds {
		in.names = append(in.names, cmd.Name)
		in.commands[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			in.commands[alias] = cmd
		}
	}
}

// Commands lists the commands in registration order.
func (in *Interpreter) Commands() []*Command {
	cmds := make([]*Command, 0, len(in.names))
	for _, name := range in.names {
		cmds = append(cmds, in.commands[name])
	}
	return cmds
}

// Exec executes a command line.
func (in *Interpreter) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return in.Run(fields[0], fields[1:]...)
}

// Run executes a command by name.
func (in *Interpreter) Run(name string, args ...string) (string, error) {
	cmd, ok := in.commands[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.Func(args)
}

// Help lists the commands.
func (in *Interpreter) Help() string {
	names := append([]string(nil), in.names...)
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%-10s %s\n", name, in.commands[name].Help)
	}
	return sb.String()
}

func (in *Interpreter) command(name, help string, kind flight.CommandKind, aliases ...string) *Command {
	return &Command{
		Name:    name,
		Aliases: aliases,
		Help:    help,
		Func: func(args []string) (string, error) {
			in.Layer.Do(CommandAction(kind))
			return "", nil
		},
	}
}

func (in *Interpreter) pid(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: pid BYTE...", ErrUsage)
	}
	payload, err := parseBytes(args)
	if err != nil {
		return "", err
	}
	in.Layer.Do(CommandAction(flight.ChangePIDGain, payload...))
	return "", nil
}

func (in *Interpreter) control(axis flight.Axis) *Command {
	return &Command{
		Name: axis.String(),
		Help: fmt.Sprintf("VALUE set %s (%d..%d)", axis, flight.MinValue, flight.MaxValue),
		Func: func(args []string) (string, error) {
			if len(args) != 1 {
				return "", fmt.Errorf("%w: %s VALUE", ErrUsage, axis)
			}
			val, err := strconv.Atoi(args[0])
			if err != nil {
				return "", fmt.Errorf("%w: %s VALUE", ErrUsage, axis)
			}
			in.Layer.Do(ControlAction(axis, val))
			return "", nil
		},
	}
}

func (in *Interpreter) key(down bool) func([]string) (string, error) {
	return func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("%w: key KEY", ErrUsage)
		}
		var mapped bool
		if down {
			mapped = in.Layer.KeyDown(args[0])
		} else {
			mapped = in.Layer.KeyUp(args[0])
		}
		if !mapped {
			return "", fmt.Errorf("key %q not mapped in %s mapping", args[0], in.Layer.Active())
		}
		return "", nil
	}
}

func (in *Interpreter) status([]string) (string, error) {
	if in.Status == nil {
		return "mapping: " + in.Layer.Active().String(), nil
	}
	return in.Status(), nil
}

func (in *Interpreter) quit([]string) (string, error) {
	if in.Quit != nil {
		in.Quit()
	}
	return "", nil
}
