package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akhildatla/bfvm/pkg/compiler"
	"github.com/akhildatla/bfvm/pkg/loader"
	"github.com/akhildatla/bfvm/pkg/raster"
	"github.com/akhildatla/bfvm/pkg/render"
)

func newEncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [flags] file.bf",
		Short: "Draw a program as a PNG image.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.paletteFlag(cmd)
			if err != nil {
				return err
			}
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			// Refuse programs that would not run once decoded.
			if _, err := compiler.Compile(string(source)); err != nil {
				return err
			}

			width := intOr(cmd, "width", a.cfg.Raster.Width)
			b, err := raster.Encode(string(source), p, width)
			if err != nil {
				return err
			}
			output := GetString(cmd, "output")
			if output == "" {
				output = replaceExt(args[0], ".png")
			}
			if err := loader.SavePNG(output, b.Image()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Encoded: %s (%dx%d, %s palette)\n", output, b.Width(), b.Height(), p.Name)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: input with .png extension)")
	cmd.Flags().Int("width", 32, "image width in pixels (at least 3)")
	addPaletteFlag(cmd)
	return cmd
}

// decode loads path and decodes it with the palette and step limit flags.
func (a *app) decode(cmd *cobra.Command, path string) (raster.Sized, *raster.Result, error) {
	p, err := a.paletteFlag(cmd)
	if err != nil {
		return nil, nil, err
	}
	g, err := loader.LoadGrid(path)
	if err != nil {
		return nil, nil, err
	}
	d := raster.NewDecoder(p, raster.WithMaxSteps(intOr(cmd, "max-pixels", a.cfg.Raster.MaxSteps)))
	res, err := d.Decode(g)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("decoded %d instruction(s) from %d visited pixel(s), %d skipped",
		len(res.Source), len(res.Visits), res.Skipped)
	return g, res, nil
}

func newDecodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [flags] image",
		Short: "Read a program from an image or pixel table.",
		Long: `Read a program from a PNG, GIF or JPEG image, or from a CSV, JSON Lines
or Parquet table with x, y, r, g and b columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := a.decode(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if GetFlag(cmd, "trace") {
				fmt.Fprint(out, loader.TraceFrame(res).Table())
			}
			if path := GetString(cmd, "trace-csv"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := loader.WriteTraceCSV(f, res); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}

			if !GetFlag(cmd, "run") {
				fmt.Fprintln(out, res.Source)
				return nil
			}
			program, err := compiler.Compile(res.Source)
			if err != nil {
				return err
			}
			return a.execute(cmd, program)
		},
	}
	addPaletteFlag(cmd)
	addMachineFlags(cmd)
	cmd.Flags().Int("max-pixels", 0, "stop decoding after this many pixels (0: unlimited)")
	cmd.Flags().Bool("trace", false, "print every visited pixel as a table")
	cmd.Flags().String("trace-csv", "", "write every visited pixel to a CSV file")
	cmd.Flags().Bool("run", false, "execute the decoded program")
	return cmd
}

func newTraceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [flags] image",
		Short: "Render a magnified image with the decoder's path drawn on it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, res, err := a.decode(cmd, args[0])
			if err != nil {
				return err
			}
			factor := intOr(cmd, "magnify", a.cfg.Trace.Magnify)
			img, err := render.Trace(g, res.Path(), render.WithFactor(factor))
			if err != nil {
				return err
			}
			output := GetString(cmd, "output")
			if output == "" {
				output = replaceExt(args[0], "") + "_trace.png"
			}
			if err := loader.SavePNG(output, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Traced: %s (%d step(s))\n", output, len(res.Visits))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: <image>_trace.png)")
	cmd.Flags().Int("magnify", render.DefaultFactor, "output pixels per image pixel")
	cmd.Flags().Int("max-pixels", 0, "stop decoding after this many pixels (0: unlimited)")
	addPaletteFlag(cmd)
	return cmd
}
