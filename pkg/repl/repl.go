// Package repl runs programs typed one line at a time.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/akhildatla/bfvm/pkg/embed"
	"github.com/akhildatla/bfvm/pkg/raster"
	"github.com/akhildatla/bfvm/pkg/vm"
)

const (
	prompt     = "bf> "
	promptCont = "...> "
)

// dumpCells is how many tape cells dump shows past the data pointer.
const dumpCells = 8

// REPL provides an interactive Read-Eval-Print Loop. Each line is compiled
// and run on a fresh VM fed with the session input.
type REPL struct {
	input       []byte
	tapeSize    int
	maxSteps    int64
	palette     *raster.Palette
	last        *vm.VM
	history     []string
	multiline   strings.Builder
	inMultiline bool
	done        bool
	quiet       bool
	logger      log.FieldLogger
}

// New creates a new REPL instance.
func New() *REPL {
	return &REPL{
		tapeSize: vm.DefaultTapeSize,
		palette:  raster.DirectPalette(),
		history:  []string{},
		logger:   log.StandardLogger(),
	}
}

// SetInput sets the input every program line starts with.
func (r *REPL) SetInput(s string) {
	r.input = []byte(s)
}

// SetTapeSize sets the tape size of new machines.
func (r *REPL) SetTapeSize(n int) {
	r.tapeSize = n
}

// SetMaxSteps bounds each line. Zero means unlimited.
func (r *REPL) SetMaxSteps(n int64) {
	r.maxSteps = n
}

// SetPalette sets the palette used by the image command.
func (r *REPL) SetPalette(p *raster.Palette) {
	r.palette = p
}

// SetQuiet suppresses the banner.
func (r *REPL) SetQuiet(q bool) {
	r.quiet = q
}

// Start starts the REPL loop. It returns at end of input or after quit.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	if !r.quiet {
		fmt.Fprintln(out, "bfvm REPL - tape machine")
		fmt.Fprintln(out, "Type 'help' for available commands, 'quit' to exit")
		fmt.Fprintln(out)
	}

	for !r.done {
		if r.inMultiline {
			fmt.Fprint(out, promptCont)
		} else {
			fmt.Fprint(out, prompt)
		}

		if !scanner.Scan() {
			break
		}

		line := scanner.Text()

		if r.inMultiline {
			if line == "" {
				r.inMultiline = false
				input := r.multiline.String()
				r.multiline.Reset()
				r.eval(input, out)
			} else {
				r.multiline.WriteString(line)
				r.multiline.WriteString("\n")
			}
			continue
		}

		if handled := r.handleCommand(line, out); handled {
			continue
		}

		if strings.HasSuffix(line, "\\") {
			r.inMultiline = true
			r.multiline.WriteString(strings.TrimSuffix(line, "\\"))
			r.multiline.WriteString("\n")
			continue
		}

		r.eval(line, out)
	}
}

func (r *REPL) handleCommand(line string, out io.Writer) bool {
	trimmed := strings.TrimSpace(line)
	parts := strings.Fields(trimmed)

	if len(parts) == 0 {
		return true
	}

	switch parts[0] {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Goodbye!")
		r.done = true
		return true

	case "help", "h", "?":
		r.printHelp(out)
		return true

	case "input":
		if len(parts) > 1 {
			r.input = []byte(strings.TrimSpace(strings.TrimPrefix(trimmed, "input")))
		}
		fmt.Fprintf(out, "Input: %q\n", string(r.input))
		return true

	case "tape":
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n <= 0 {
				fmt.Fprintln(out, "Usage: tape <positive size>")
				return true
			}
			r.tapeSize = n
		}
		fmt.Fprintf(out, "Tape size: %d\n", r.tapeSize)
		return true

	case "palette":
		if len(parts) > 1 {
			p, err := raster.PaletteByName(parts[1])
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return true
			}
			r.palette = p
		}
		fmt.Fprintf(out, "Palette: %s\n", r.palette.Name)
		return true

	case "image":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: image <path>")
			return true
		}
		r.history = append(r.history, trimmed)
		result, err := embed.ExecuteImage(parts[1],
			embed.WithInputBytes(r.input),
			embed.WithTapeSize(r.tapeSize),
			embed.WithMaxSteps(r.maxSteps),
			embed.WithPalette(r.palette),
			embed.WithLogger(r.logger),
		)
		r.printResult(result, err, out)
		return true

	case "dump":
		r.dump(out)
		return true

	case "history":
		for i, cmd := range r.history {
			fmt.Fprintf(out, "%3d: %s\n", i+1, cmd)
		}
		return true
	}

	return false
}

func (r *REPL) eval(input string, out io.Writer) {
	if strings.TrimSpace(input) == "" {
		return
	}

	r.history = append(r.history, input)

	machine, err := embed.New(input, r.input, r.tapeSize)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	r.last = machine

	result, err := embed.Drive(machine, embed.WithMaxSteps(r.maxSteps), embed.WithLogger(r.logger))
	r.printResult(result, err, out)
}

func (r *REPL) printResult(result string, err error, out io.Writer) {
	if result != "" {
		fmt.Fprint(out, result)
		if !strings.HasSuffix(result, "\n") {
			fmt.Fprintln(out)
		}
	}
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

func (r *REPL) dump(out io.Writer) {
	if r.last == nil {
		fmt.Fprintln(out, "Nothing has run yet")
		return
	}
	r.last.DumpStep(out)
	r.last.DumpInstructions(out)
	r.last.DumpData(out, r.last.DataPointer()+dumpCells)
	r.last.DumpSummary(out)
}

func (r *REPL) printHelp(out io.Writer) {
	help := `
bfvm REPL Commands:
  help, h, ?       Show this help message
  quit, exit, q    Exit the REPL
  input [text]     Show or set the input given to each line
  tape [n]         Show or set the tape size
  palette [name]   Show or set the palette (direct, hash)
  image <path>     Decode and run an image or pixel table
  dump             Show the machine state after the last line
  history          Show command history

Examples:
  ++++++[>++++++<-]>.
  ,[.,]

Tips:
  - Characters other than ><+-.,[] are ignored
  - End a line with \ for multiline input
  - Press Enter twice to execute multiline input
`
	fmt.Fprint(out, help)
}
