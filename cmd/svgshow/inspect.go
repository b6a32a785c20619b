package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/benoitkugler/svgshow/presentation"
	"github.com/benoitkugler/svgshow/svgdisplay"
	"github.com/benoitkugler/svgshow/svgscene"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGeometryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "geometry <document.svg> <element-id>",
		Short: "Prints the layer geometry framing an element, as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := svgscene.LoadFile(args[0], a.sceneOptions())
			if err != nil {
				return err
			}
			el, err := doc.FindElement(args[1])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(svgdisplay.ElementGeometry(el)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newFramesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "frames <presentation.yaml>",
		Short: "Lists the frames of a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pres, err := presentation.LoadFile(args[0])
			if err != nil {
				return err
			}
			a.log.WithField("file", args[0]).Debug("presentation loaded")

			out := cmd.OutOrStdout()
			if pres.Title != "" {
				fmt.Fprintln(out, pres.Title)
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tTITLE\tLAYERS")
			for i, fr := range pres.Frames {
				layers := make([]string, 0, len(fr.Layers))
				for id := range fr.Layers {
					layers = append(layers, id)
				}
				sort.Strings(layers)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, fr.ID, fr.Title, strings.Join(layers, ","))
			}
			return w.Flush()
		},
	}
}
