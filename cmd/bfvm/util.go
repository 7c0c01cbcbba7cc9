package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/akhildatla/bfvm/pkg/compiler"
	"github.com/akhildatla/bfvm/pkg/raster"
	"github.com/akhildatla/bfvm/pkg/vm"
)

// GetFlag gets an expected boolean flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// GetInt gets an expected int flag, or panic if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// GetDuration gets an expected duration flag, or panic if an error arises.
func GetDuration(cmd *cobra.Command, flag string) time.Duration {
	r, err := cmd.Flags().GetDuration(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// intOr returns the flag value when it was given on the command line and
// fallback otherwise.
func intOr(cmd *cobra.Command, flag string, fallback int) int {
	if cmd.Flags().Changed(flag) {
		return GetInt(cmd, flag)
	}
	return fallback
}

func stringOr(cmd *cobra.Command, flag string, fallback string) string {
	if cmd.Flags().Changed(flag) {
		return GetString(cmd, flag)
	}
	return fallback
}

// paletteFlag resolves --palette, falling back to the configured palette.
func (a *app) paletteFlag(cmd *cobra.Command) (*raster.Palette, error) {
	if cmd.Flags().Changed("palette") {
		return raster.PaletteByName(GetString(cmd, "palette"))
	}
	return a.cfg.Palette(), nil
}

func addPaletteFlag(cmd *cobra.Command) {
	cmd.Flags().String("palette", "direct", "color table: "+strings.Join(raster.PaletteNames(), ", "))
}

// loadProgram reads a source file, or bytecode when the name ends in .bfbc.
func loadProgram(path string) (*vm.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".bfbc") {
		return vm.DeserializeProgram(data)
	}
	return compiler.Compile(string(data))
}

// isTerminal reports whether w writes to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeOutput prints program output, closing the line on terminals so the
// prompt does not run into it.
func writeOutput(w io.Writer, out string) {
	fmt.Fprint(w, out)
	if out != "" && !strings.HasSuffix(out, "\n") && isTerminal(w) {
		fmt.Fprintln(w)
	}
}

// replaceExt swaps the extension of path for ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
