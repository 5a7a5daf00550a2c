package console

import (
	"context"
	"strings"

	"github.com/abiosoft/ishell"
	"go.uber.org/zap"
)

const Prompt = "[NORA TERMINAL] > "

// Commands lists the operator commands registered with the shell, with
// their one line help.
var Commands = []struct {
	Name string
	Help string
}{
	{"status", "View the current status of NORA"},
	{"set-interval", "set-interval <hours> <minutes>: set the sampling interval"},
	{"start-sampling", "Enable interval sampling"},
	{"stop-sampling", "Disable interval sampling"},
	{"run-sample", "Start a sample manually"},
	{"read-temps", "Returns the temperatures of all system RTDs"},
	{"help", "List the known commands"},
}

// Shell reads operator commands interactively and submits them to a Queue.
// It is also the io.Writer the dispatcher prints replies to.
type Shell struct {
	shell       *ishell.Shell
	queue       *Queue
	logger      *zap.Logger
	onInterrupt func()
}

// New builds the shell. onInterrupt runs when the operator presses Ctrl-C
// or types exit.
func New(queue *Queue, logger *zap.Logger, onInterrupt func()) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onInterrupt == nil {
		onInterrupt = func() {}
	}
	s := &Shell{
		shell:       ishell.New(),
		queue:       queue,
		logger:      logger,
		onInterrupt: onInterrupt,
	}
	s.shell.SetPrompt(Prompt)

	// help and exit are provided by ishell; help is answered by the
	// dispatcher and exit ends the program.
	s.shell.DeleteCmd("help")
	s.shell.DeleteCmd("exit")

	for _, c := range Commands {
		name := c.Name
		s.shell.AddCmd(&ishell.Cmd{
			Name: name,
			Help: c.Help,
			Func: func(c *ishell.Context) {
				s.submit(append([]string{name}, c.Args...))
			},
		})
	}
	s.shell.AddCmd(&ishell.Cmd{
		Name: "exit",
		Help: "Stop the topside link",
		Func: func(c *ishell.Context) {
			s.onInterrupt()
			c.Stop()
		},
	})
	s.shell.NotFound(func(c *ishell.Context) {
		s.submit(c.Args)
	})
	s.shell.Interrupt(func(c *ishell.Context, count int, input string) {
		s.onInterrupt()
		c.Stop()
	})
	s.shell.EOF(func(c *ishell.Context) {
		c.Stop()
	})
	return s
}

func (s *Shell) submit(args []string) {
	if !s.queue.Submit(args) {
		s.logger.Warn("Console command dropped", zap.String("line", strings.Join(args, " ")))
	}
}

// Write prints dispatcher output on the shell.
func (s *Shell) Write(p []byte) (int, error) {
	s.shell.Print(string(p))
	return len(p), nil
}

// Run serves the shell until ctx is done or the operator leaves it.
func (s *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.shell.Println("NORA topside link")
		s.shell.Run()
	}()

	select {
	case <-ctx.Done():
		s.shell.Close()
	case <-done:
		s.logger.Info("Console closed")
	}
	return nil
}
