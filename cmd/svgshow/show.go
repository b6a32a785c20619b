package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/benoitkugler/svgshow/presentation"
	"github.com/benoitkugler/svgshow/svgdisplay"
	"github.com/benoitkugler/svgshow/svgpath"
	"github.com/benoitkugler/svgshow/svgraster"
	"github.com/benoitkugler/svgshow/svgscene"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type showOptions struct {
	framesFile string
	frame      string
	layers     []string
	output     string
	preview    string

	drag   string
	zoom   string
	rotate float64
}

func newShowCmd(a *app) *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show <document.svg>",
		Short: "Shows a frame of a document, and writes the resulting SVG",
		Long: `Shows a frame of a document, and writes the resulting SVG.

Without a frames file, the whole document is shown in every layer.
The frame is selected by id, or by its position (starting at 1).
Gestures are then applied, in the order drag, zoom, rotate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show(cmd.OutOrStdout(), args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.framesFile, "frames", "f", "", "presentation file (YAML)")
	flags.StringVar(&opts.frame, "frame", "", "frame to show: id or position (default to the first one)")
	flags.StringSliceVarP(&opts.layers, "layers", "l", nil, "layer ids, when no presentation file is given (default to the top level groups)")
	flags.StringVarP(&opts.output, "output", "o", "-", "output SVG file, - for stdout")
	flags.StringVar(&opts.preview, "preview", "", "also write a raster preview to this file")
	flags.StringVar(&opts.drag, "drag", "", "drag gesture: dx,dy in pixels")
	flags.StringVar(&opts.zoom, "zoom", "", "zoom gesture: factor[,x,y] (default to the viewport center)")
	flags.Float64Var(&opts.rotate, "rotate", 0, "rotate gesture, in degrees")
	return cmd
}

func (a *app) show(stdout io.Writer, file string, opts showOptions) error {
	doc, err := svgscene.LoadFile(file, a.sceneOptions())
	if err != nil {
		return err
	}

	var pres *presentation.Presentation
	layers := opts.layers
	if opts.framesFile != "" {
		pres, err = presentation.LoadFile(opts.framesFile)
		if err != nil {
			return err
		}
		layers = pres.Layers
	} else if len(layers) == 0 {
		layers = doc.TopLevelGroups()
	}

	width, height := a.cfg.Viewport.Width, a.cfg.Viewport.Height
	display := svgdisplay.New(doc, width, height, svgdisplay.Options{Logger: a.log})
	display.OnReady(func(d *svgdisplay.Display) {
		a.log.WithFields(logrus.Fields{
			"layers": len(d.LayerIDs()),
			"bbox":   d.DocumentBBox(),
		}).Info("document ready")
	})
	if err := display.Setup(layers); err != nil {
		return err
	}

	if pres != nil {
		player, err := presentation.NewPlayer(display, pres, doc, a.log)
		if err != nil {
			return err
		}
		if err := jumpTo(player, opts.frame); err != nil {
			return err
		}
	} else {
		display.ShowFrame(display.DocumentGeometry())
	}

	if err := applyGestures(display, opts); err != nil {
		return err
	}

	if err := writeSVG(stdout, doc, opts.output); err != nil {
		return err
	}
	if opts.preview != "" {
		return a.writePreview(doc, display, opts.preview)
	}
	return nil
}

// jumpTo selects the frame by id, then by position
func jumpTo(player *presentation.Player, frame string) error {
	if frame == "" {
		if player.Len() == 0 {
			return fmt.Errorf("the presentation has no frames")
		}
		player.Start()
		return nil
	}
	if err := player.JumpToID(frame); err == nil {
		return nil
	}
	pos, err := strconv.Atoi(frame)
	if err != nil {
		return fmt.Errorf("unknown frame %q", frame)
	}
	return player.JumpTo(pos - 1)
}

func applyGestures(display *svgdisplay.Display, opts showOptions) error {
	if opts.drag != "" {
		args, err := gestureArgs("drag", opts.drag, 2)
		if err != nil {
			return err
		}
		display.Drag(args[0], args[1])
	}
	if opts.zoom != "" {
		args, err := gestureArgs("zoom", opts.zoom, 1, 3)
		if err != nil {
			return err
		}
		if args[0] == 0 {
			return fmt.Errorf("invalid zoom factor 0")
		}
		x, y := display.Viewport()
		x, y = x/2, y/2
		if len(args) == 3 {
			x, y = args[1], args[2]
		}
		display.Zoom(args[0], x, y)
	}
	if opts.rotate != 0 {
		display.Rotate(opts.rotate)
	}
	return nil
}

// gestureArgs parses a list of numbers, whose length must be one of `counts`
func gestureArgs(name, value string, counts ...int) ([]float64, error) {
	args, err := svgpath.ParseNumbers(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
	}
	for _, c := range counts {
		if len(args) == c {
			return args, nil
		}
	}
	return nil, fmt.Errorf("invalid %s arguments %q: expected %v numbers", name, value, counts)
}

func writeSVG(stdout io.Writer, doc *svgscene.Document, output string) error {
	if output == "-" || output == "" {
		_, err := doc.WriteTo(stdout)
		return err
	}
	return doc.WriteFile(output)
}

func (a *app) writePreview(doc *svgscene.Document, display *svgdisplay.Display, file string) error {
	var layers []svgraster.Layer
	for _, view := range display.Layers() {
		el, err := doc.ElementByID(view.ID)
		if err != nil {
			return err
		}
		layers = append(layers, svgraster.Layer{View: view, Outline: el.Outline().Transform(el.Transform())})
	}
	width, height := display.Viewport()
	img := svgraster.RenderPreview(layers, int(width), int(height), svgraster.Options{})

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := svgraster.Encode(f, img, a.format); err != nil {
		f.Close()
		return err
	}
	a.log.WithField("file", file).Info("preview written")
	return f.Close()
}
