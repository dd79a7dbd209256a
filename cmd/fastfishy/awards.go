package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/fastfishy/internal/adapters/render"
	app "github.com/okian/fastfishy/internal/app"
)

var errMissingMeet = errors.New("--meet is required")

type awardOptions struct {
	meet       string
	csvPath    string
	labelsPath string
	xlsxPath   string
}

func newMeetsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "meets <history.csv|history.xlsx>",
		Short: "List the meets of a history table that hold results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := root.svc.LoadHistoryFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			meets, err := root.svc.Meets(cmd.Context(), t)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(root.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MEET\tNAME")
			for _, m := range meets {
				fmt.Fprintf(tw, "%s\t%s\n", m.ID, m.Display())
			}
			return tw.Flush()
		},
	}
}

func newAwardCmd(root *rootOptions, kind, short string) *cobra.Command {
	opts := &awardOptions{}
	cmd := &cobra.Command{
		Use:   kind + " <history.csv|history.xlsx> --meet MeetN",
		Short: short,
		Example: fmt.Sprintf(`  fastfishy %[1]s season.xlsx --meet Meet3
  fastfishy %[1]s season.csv --meet Meet3 --labels labels.pdf --csv labels.csv`, kind),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.meet == "" {
				return errMissingMeet
			}
			t, err := root.svc.LoadHistoryFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res, err := root.svc.Award(cmd.Context(), kind, t, opts.meet)
			if err != nil {
				return err
			}
			return opts.write(root.out, res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.meet, "meet", "", "Meet to evaluate, e.g. Meet3")
	f.StringVar(&opts.csvPath, "csv", "", "Write the labels as CSV")
	f.StringVar(&opts.labelsPath, "labels", "", "Write the labels onto an Avery 5160 PDF sheet")
	f.StringVar(&opts.xlsxPath, "xlsx", "", "Write the labels (and Fast Fishy rankings) as a workbook")
	return cmd
}

func (o *awardOptions) write(out io.Writer, res *app.AwardResult) error {
	printAward(out, res)

	if o.csvPath != "" {
		if err := writeFile(o.csvPath, func(w io.Writer) error { return render.WriteLabelsCSV(w, res.Labels) }); err != nil {
			return err
		}
	}
	if o.labelsPath != "" {
		if err := writeFile(o.labelsPath, func(w io.Writer) error { return render.WriteLabelSheet(w, res.Labels) }); err != nil {
			return err
		}
	}
	if o.xlsxPath != "" {
		if err := writeFile(o.xlsxPath, func(w io.Writer) error {
			return render.WriteLabelsXLSX(w, res.Labels, res.Rankings, res.AgeGroups)
		}); err != nil {
			return err
		}
	}
	return nil
}

func printAward(out io.Writer, res *app.AwardResult) {
	fmt.Fprintf(out, "%s at %s: %d labels\n", res.Kind, res.Meet.Display(), len(res.Labels))
	if len(res.Labels) > 0 {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCATEGORY\tDETAIL")
		for _, l := range res.Labels {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Name, l.Category, l.Detail)
		}
		_ = tw.Flush()
	}
	for _, age := range res.AgeGroups {
		fmt.Fprintf(out, "\nRanking %s\n", age)
		for i, r := range res.Rankings[age] {
			fmt.Fprintf(out, "%3d. %s %s\n", i+1, r.Name, r.Display)
		}
	}
}

func newSeasonCmd(root *rootOptions) *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "season <history.csv|history.xlsx>",
		Short: "Evaluate Fast Fishy for every meet of the season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := root.svc.LoadHistoryFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			results, err := root.svc.Season(cmd.Context(), t)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(root.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MEET\tNAME\tCATEGORY\tDETAIL")
			var all [][]string
			for _, res := range results {
				for _, l := range res.Labels {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Meet.ID, l.Name, l.Category, l.Detail)
					all = append(all, append([]string{res.Meet.ID}, render.LabelRow(l)...))
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if csvPath == "" {
				return nil
			}
			return writeFile(csvPath, func(w io.Writer) error {
				return render.WriteCSV(w, append([]string{"Meet"}, render.LabelsHeader...), all)
			})
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write every meet's labels as one CSV")
	return cmd
}
