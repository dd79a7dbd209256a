package main

import (
	"io"

	"github.com/spf13/cobra"

	app "github.com/okian/fastfishy/internal/app"
	"github.com/okian/fastfishy/internal/config"
	"github.com/okian/fastfishy/pkg/logger"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	logLevel       string
	recordWinners  bool
	parallelism    int
	lanes          int
	aggressiveness int

	out    io.Writer
	errOut io.Writer
	svc    *app.Service
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "fastfishy",
		Short: "Swim meet heat combinations and award labels",
		Long: `fastfishy finds female/male events whose leftover swimmers can share one
heat, and produces improvement, Triple Drop and Fast Fishy award labels from a
season history table.

Defaults come from FASTFISHY_* environment variables and the optional YAML file
named by FASTFISHY_CONFIG; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if opts.svc != nil {
				opts.svc.Stop()
			}
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	pf.BoolVar(&opts.recordWinners, "record-winners", false, "Treat Fast Fishy labels recorded in MeetN-Label columns as earlier wins")
	pf.IntVar(&opts.parallelism, "parallelism", 0, "Meets evaluated concurrently by season (default from config)")

	cmd.AddCommand(
		newCombineCmd(opts),
		newMeetsCmd(opts),
		newAwardCmd(opts, app.KindImprovements, "Label every improved swim at a meet"),
		newAwardCmd(opts, app.KindTripleDrops, "Label swimmers who improved in three or more events at a meet"),
		newAwardCmd(opts, app.KindFastFishy, "Award the largest cumulative drop per age group at a meet"),
		newSeasonCmd(opts),
	)
	return cmd
}

// setup loads configuration, applies flag overrides and starts the service.
// Logs go to the error stream so stdout carries only results.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := logger.InitWithWriter(o.errOut); err != nil {
		return err
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}

	lanes, aggressiveness := cfg.Lanes, cfg.Aggressiveness
	if cmd.Flags().Changed("lanes") {
		lanes = o.lanes
	}
	if cmd.Flags().Changed("aggressiveness") {
		aggressiveness = o.aggressiveness
	}
	parallelism := cfg.Parallelism
	if o.parallelism > 0 {
		parallelism = o.parallelism
	}

	o.svc = app.New(
		app.WithLogger(logger.Named("cli")),
		app.WithLanes(lanes),
		app.WithAggressiveness(aggressiveness),
		app.WithParallelism(parallelism),
		app.WithRecordedWinners(cfg.RecordWinnerLabels || o.recordWinners),
	)
	return o.svc.Start(cmd.Context())
}
