// Package embed provides the Go embedding API for bfvm.
//
// Pass a program, get its output.
//
// Basic usage:
//
//	out, err := embed.Execute(`++++++[>++++++<-]>.`)
//
// With input and limits:
//
//	out, err := embed.ExecuteWithOptions(code,
//	    embed.WithInput("abc"),
//	    embed.WithTimeout(time.Second),
//	    embed.WithMaxSteps(1_000_000),
//	)
//
// Programs drawn as images run through the same path:
//
//	out, err := embed.ExecuteImage("hello.png", embed.WithPalette(raster.HashPalette()))
package embed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/akhildatla/bfvm/pkg/compiler"
	"github.com/akhildatla/bfvm/pkg/loader"
	"github.com/akhildatla/bfvm/pkg/raster"
	"github.com/akhildatla/bfvm/pkg/vm"
)

// Common errors
var (
	ErrTimeout   = errors.New("execution timeout exceeded")
	ErrStepLimit = errors.New("step limit exceeded")
)

// cancelCheckInterval is how many steps run between context checks.
const cancelCheckInterval = 1024

// New builds a VM for source. Non-instruction characters are ignored and
// loops are resolved before anything runs.
func New(source string, input []byte, tapeSize int) (*vm.VM, error) {
	program, err := compiler.Compile(source)
	if err != nil {
		return nil, err
	}
	return vm.NewVM(program, input, tapeSize)
}

// Execute compiles and runs source with no input on the default tape and
// returns its output.
func Execute(code string) (string, error) {
	return ExecuteWithOptions(code)
}

// ExecuteFile reads a program and executes it. Files ending in .bfbc are
// read as bytecode, anything else as source.
func ExecuteFile(path string, opts ...Option) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".bfbc") {
		program, err := vm.DeserializeProgram(data)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return ExecuteProgram(program, opts...)
	}
	return ExecuteWithOptions(string(data), opts...)
}

// Options configures execution behavior for ExecuteWithOptions.
type Options struct {
	// Input is consumed by GET instructions front to back.
	Input []byte

	// TapeSize is the number of cells. Zero means vm.DefaultTapeSize.
	TapeSize int

	// Timeout sets maximum execution time. Zero means no timeout.
	Timeout time.Duration

	// MaxSteps limits the number of instructions executed.
	// Zero means unlimited.
	MaxSteps int64

	// Palette decodes images for ExecuteImage. Nil means the direct palette.
	Palette *raster.Palette

	// Context for cancellation. If nil, context.Background() is used.
	Context context.Context

	// Logger receives a summary of each run at debug level.
	Logger log.FieldLogger
}

// Option is a functional option for configuring execution.
type Option func(*Options)

// WithInput sets the input text, consumed as its UTF-8 bytes.
func WithInput(s string) Option {
	return func(o *Options) {
		o.Input = []byte(s)
	}
}

// WithInputBytes sets raw input bytes.
func WithInputBytes(b []byte) Option {
	return func(o *Options) {
		o.Input = b
	}
}

// WithTapeSize sets the number of tape cells.
func WithTapeSize(n int) Option {
	return func(o *Options) {
		o.TapeSize = n
	}
}

// WithTimeout sets execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithMaxSteps sets the step limit.
func WithMaxSteps(n int64) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

// WithPalette sets the palette used to decode images.
func WithPalette(p *raster.Palette) Option {
	return func(o *Options) {
		o.Palette = p
	}
}

// WithContext sets the context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

// WithLogger sets the logger.
func WithLogger(l log.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func newOptions(opts []Option) *Options {
	options := &Options{
		TapeSize: vm.DefaultTapeSize,
		Context:  context.Background(),
		Logger:   log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.TapeSize == 0 {
		options.TapeSize = vm.DefaultTapeSize
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	return options
}

// ExecuteWithOptions compiles and runs code with advanced configuration.
// On failure the output produced before the failure is returned with the
// error.
func ExecuteWithOptions(code string, opts ...Option) (string, error) {
	program, err := compiler.Compile(code)
	if err != nil {
		return "", err
	}
	return ExecuteProgram(program, opts...)
}

// ExecuteProgram runs an already compiled program.
func ExecuteProgram(program *vm.Program, opts ...Option) (string, error) {
	options := newOptions(opts)
	machine, err := vm.NewVM(program, options.Input, options.TapeSize)
	if err != nil {
		return "", err
	}
	return drive(machine, options)
}

// ExecuteImage loads an image or pixel table, decodes it with the configured
// palette and runs the decoded program.
func ExecuteImage(path string, opts ...Option) (string, error) {
	options := newOptions(opts)
	g, err := loader.LoadGrid(path)
	if err != nil {
		return "", err
	}
	p := options.Palette
	if p == nil {
		p = raster.DirectPalette()
	}
	res, err := raster.NewDecoder(p, raster.WithLogger(options.Logger)).Decode(g)
	if err != nil {
		return "", err
	}
	return ExecuteWithOptions(res.Source, opts...)
}

// Drive steps machine to completion under the limits in opts. Only the
// timeout, step limit, context and logger options apply.
func Drive(machine *vm.VM, opts ...Option) (string, error) {
	return drive(machine, newOptions(opts))
}

func drive(machine *vm.VM, options *Options) (string, error) {
	ctx := options.Context
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	start := time.Now()
	var steps int64
	for machine.CanContinue() {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return machine.OutputString(), contextError(err, machine.Steps())
			}
		}
		if options.MaxSteps > 0 && machine.Steps() >= options.MaxSteps {
			return machine.OutputString(), fmt.Errorf("%w: %d", ErrStepLimit, options.MaxSteps)
		}
		if _, _, err := machine.Step(); err != nil {
			return machine.OutputString(), err
		}
		steps++
	}

	options.Logger.WithFields(log.Fields{
		"steps":   machine.Steps(),
		"output":  len(machine.Output()),
		"elapsed": time.Since(start),
	}).Debug("program finished")
	return machine.OutputString(), nil
}

func contextError(err error, steps int64) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %d steps", ErrTimeout, steps)
	}
	return err
}
