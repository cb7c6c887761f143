package main

import (
	"flag"
)

// cliOpts holds every flag taspaths accepts, parsed the way noisetorch's
// CLIOpts/parseCLIOpts splits flag parsing from flag.Parse itself so the
// struct can be constructed and inspected independently of os.Args in
// tests.
type cliOpts struct {
	instrumentFile string
	exportFormat   string
	exportPath     string
	startA2        float64
	startA4        float64
	goalA2         float64
	goalA4         float64
	workers        int
	verbose        bool
}

func parseCLIOpts(args []string) (cliOpts, error) {
	fs := flag.NewFlagSet("taspaths", flag.ContinueOnError)
	var opt cliOpts
	fs.StringVar(&opt.exportFormat, "format", "raw", "export format: raw, nomad, or nicos")
	fs.StringVar(&opt.exportPath, "o", "", "write the found path to this file instead of stdout")
	fs.Float64Var(&opt.startA2, "start-a2", 0, "start alpha2 angle (degrees)")
	fs.Float64Var(&opt.startA4, "start-a4", 0, "start alpha4 angle (degrees)")
	fs.Float64Var(&opt.goalA2, "goal-a2", 0, "goal alpha2 angle (degrees)")
	fs.Float64Var(&opt.goalA4, "goal-a4", 0, "goal alpha4 angle (degrees)")
	fs.IntVar(&opt.workers, "workers", 0, "rasteriser worker count (0 = config default)")
	fs.BoolVar(&opt.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return cliOpts{}, err
	}
	if fs.NArg() > 0 {
		opt.instrumentFile = fs.Arg(0)
	}
	return opt, nil
}
