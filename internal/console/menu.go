package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/university-registry/pkg/errors"
	"github.com/noah-isme/university-registry/pkg/logger"
)

const menuText = `1. Show All Students
2. Show All Courses
3. Enroll Student in Course
4. Assign Grade to Student
5. Show All Grades
6. Show Course Enrollment
7. Exit
`

type commandObserver interface {
	ObserveCommand(command string, duration time.Duration)
}

// Options configures a Console.
type Options struct {
	Pretty  bool
	Logger  *zap.Logger
	Metrics commandObserver
}

// Console runs the interactive menu loop.
type Console struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
	metrics    commandObserver
	heading    *color.Color
	failure    *color.Color
}

// New constructs a Console over the registry.
func New(registry Registry, opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	heading := color.New(color.FgCyan, color.Bold)
	failure := color.New(color.FgRed)
	if opts.Pretty {
		heading.EnableColor()
		failure.EnableColor()
	} else {
		heading.DisableColor()
		failure.DisableColor()
	}
	return &Console{
		dispatcher: NewDispatcher(registry),
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		heading:    heading,
		failure:    failure,
	}
}

// Run reads menu selections from in until Exit, end of input, or ctx is cancelled.
// Command errors are reported on errOut and never end the loop.
func (c *Console) Run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(out)
		c.heading.Fprintln(out, "=== University System Menu ===")
		fmt.Fprint(out, menuText)
		fmt.Fprint(out, "Choose: ")

		line, ok := readLine(scanner)
		if !ok {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd, err := c.readCommand(line, scanner, out)
		if err != nil {
			c.report(errOut, err)
			continue
		}

		result, err := c.execute(cmd)
		if err != nil {
			c.report(errOut, err)
			continue
		}
		fmt.Fprint(out, result.Output)
		if result.Exit {
			return nil
		}
	}
}

func (c *Console) readCommand(choice string, scanner *bufio.Scanner, out io.Writer) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		return Command{}, appErrors.Clone(appErrors.ErrUniversity, "Invalid input type. Please enter a number.")
	}
	cmd := Command{Kind: Kind(n)}
	switch cmd.Kind {
	case EnrollStudent:
		cmd.CourseCode = prompt(scanner, out, "Enter Course Code: ")
		cmd.StudentID = prompt(scanner, out, "Enter Student ID: ")
	case AssignGrade:
		cmd.StudentID = prompt(scanner, out, "Enter Student ID: ")
		raw := prompt(scanner, out, "Enter Grade: ")
		grade, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Command{}, appErrors.Clone(appErrors.ErrGrade, "Invalid grade input. Please enter a number between 0 and 100.")
		}
		cmd.Grade = grade
	case ShowEnrollment:
		cmd.CourseCode = prompt(scanner, out, "Enter Course Code: ")
	}
	return cmd, nil
}

func (c *Console) execute(cmd Command) (Result, error) {
	commandID := uuid.NewString()
	log := logger.ForCommand(c.logger, cmd.Kind.String(), commandID)
	start := time.Now()

	result, err := c.dispatcher.Dispatch(cmd)

	elapsed := time.Since(start)
	if c.metrics != nil {
		c.metrics.ObserveCommand(cmd.Kind.String(), elapsed)
	}
	if err != nil {
		log.Debug("command failed", zap.Error(err), zap.Duration("duration", elapsed))
		return Result{}, err
	}
	log.Debug("command completed", zap.Duration("duration", elapsed))
	return result, nil
}

func (c *Console) report(w io.Writer, err error) {
	c.failure.Fprintf(w, "Exception: %s: %s\n", appErrors.Label(err), err.Error())
}

func prompt(scanner *bufio.Scanner, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := readLine(scanner)
	return strings.TrimSpace(line)
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}
