package input

import (
	"context"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/quadlink/pkg/framework"
)

// Console is an interactive shell feeding the Interpreter.
type Console struct {
	Interpreter *Interpreter
	Prompt      string
}

// NewConsole creates a Console.
func NewConsole(interp *Interpreter) *Console {
	return &Console{Interpreter: interp, Prompt: "quad > "}
}

// Name implements framework.Named.
func (c *Console) Name() string {
	return "Console"
}

func (c *Console) shell() *ishell.Shell {
	shell := ishell.New()
	shell.SetPrompt(c.Prompt)
	for _, cmd := range c.Interpreter.Commands() {
		name := cmd.Name
		shell.AddCmd(&ishell.Cmd{
			Name:    cmd.Name,
			Aliases: cmd.Aliases,
			Help:    cmd.Help,
			Func: func(ctx *ishell.Context) {
				out, err := c.Interpreter.Run(name, ctx.Args...)
				if err != nil {
					ctx.Err(err)
					return
				}
				if out != "" {
					ctx.Println(out)
				}
			},
		})
	}
	shell.Interrupt(func(ctx *ishell.Context, count int, input string) {
		if count > 1 {
			c.Interpreter.quit(nil)
			ctx.Stop()
			return
		}
		ctx.Println("Input Ctrl-C once more to quit")
	})
	shell.EOF(func(ctx *ishell.Context) {
		c.Interpreter.quit(nil)
		ctx.Stop()
	})
	return shell
}

// Run runs the shell until the context is done or the user quits.
func (c *Console) Run(ctx context.Context) error {
	shell := c.shell()
	return framework.RunWithContextCancel(ctx, shell.Close, func() error {
		shell.Run()
		return nil
	})
}
