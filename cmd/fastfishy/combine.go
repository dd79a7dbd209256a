package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/fastfishy/internal/adapters/render"
	app "github.com/okian/fastfishy/internal/app"
	"github.com/okian/fastfishy/internal/domain/model"
)

type combineOptions struct {
	csvPath string
	pdfPath string
	allPath string
}

func newCombineCmd(root *rootOptions) *cobra.Command {
	opts := &combineOptions{}
	cmd := &cobra.Command{
		Use:   "combine <report.pdf|events.csv|events.xlsx>",
		Short: "Find events whose remainder heats can be swum together",
		Long: `Reads a Session Report PDF, or an extracted event table, and lists every
female event whose remainder heat can be combined with a later male event of
the same age group, distance and stroke.

Examples:
  fastfishy combine session.pdf
  fastfishy combine session.pdf --lanes 8 --aggressiveness 2
  fastfishy combine events.csv --csv combinable.csv --pdf combinable.pdf --all events_out.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lanes") && root.lanes < 1 {
				return fmt.Errorf("--lanes must be at least 1, got %d", root.lanes)
			}
			if cmd.Flags().Changed("aggressiveness") && root.aggressiveness < 0 {
				return fmt.Errorf("--aggressiveness must not be negative, got %d", root.aggressiveness)
			}
			res, err := root.svc.CombineDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.write(root.out, res)
		},
	}

	f := cmd.Flags()
	f.IntVar(&root.lanes, "lanes", 0, "Pool lanes per heat (default from config, 6)")
	f.IntVar(&root.aggressiveness, "aggressiveness", 0, "Minimum remainder swimmers per event (default from config, 1)")
	f.StringVar(&opts.csvPath, "csv", "", "Write the combinable pairs as CSV")
	f.StringVar(&opts.pdfPath, "pdf", "", "Write the combinable pairs as a PDF report")
	f.StringVar(&opts.allPath, "all", "", "Write every event with its verdict as CSV")
	return cmd
}

func (o *combineOptions) write(out io.Writer, res *app.ComboResult) error {
	printPairs(out, res)

	if o.csvPath != "" {
		if err := writeFile(o.csvPath, func(w io.Writer) error { return render.WritePairsCSV(w, res.Pairs) }); err != nil {
			return err
		}
	}
	if o.pdfPath != "" {
		now := time.Now()
		if err := writeFile(o.pdfPath, func(w io.Writer) error {
			return render.WritePairsPDF(w, res.Pairs, res.Title, now)
		}); err != nil {
			return err
		}
	}
	if o.allPath != "" {
		if err := writeFile(o.allPath, func(w io.Writer) error { return render.WriteVerdictsCSV(w, res.Verdicts) }); err != nil {
			return err
		}
	}
	return nil
}

func printPairs(out io.Writer, res *app.ComboResult) {
	fmt.Fprintf(out, "%s: %d events, %d combinable (lanes=%d, aggressiveness=%d)\n",
		res.Title, len(res.Events), len(res.Pairs), res.Lanes, res.Aggressiveness)
	if len(res.Pairs) == 0 {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FEMALE\tSWIMMERS\tMALE\tSWIMMERS\tEVENT")
	for _, p := range res.Pairs {
		fmt.Fprintf(tw, "#%s %s\t%d\t#%s %s\t%d\t%s\n",
			p.Female.Number, p.Female.Label(), p.FemaleRemainder,
			p.Male.Number, p.Male.Label(), p.MaleRemainder,
			eventName(p.Female))
	}
	_ = tw.Flush()
}

func eventName(e model.Event) string {
	return e.Distance + " " + e.Stroke
}
