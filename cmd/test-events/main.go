// Command test-events drives the selection service with synthetic batches
// and prints the accumulated cut flow and region counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	app "github.com/gsaha009/CPinHToTauTau/internal/app"
	"github.com/gsaha009/CPinHToTauTau/internal/config"
	"github.com/gsaha009/CPinHToTauTau/internal/testevents"
	"github.com/gsaha009/CPinHToTauTau/pkg/logger"
)

func main() {
	channel := flag.String("channel", config.ChannelTauTau, "channel to exercise (etau, mutau, tautau)")
	batches := flag.Int("batches", 10, "number of batches to submit")
	events := flag.Int("events", 5000, "events per batch")
	seed := flag.Int64("seed", 0, "random seed (0 for nondeterministic)")
	workers := flag.Int("workers", 0, "worker count (0 for config default)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx := context.Background()
	cfg := config.New(ctx)
	if *workers > 0 {
		cfg.WorkerCount = *workers
	}

	svc := app.New(
		app.WithLogger(logger.Get()),
		app.WithConfig(cfg),
		app.WithWorkerCount(cfg.WorkerCount),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	opts := []testevents.Option{testevents.WithEventCount(*events)}
	if *seed != 0 {
		opts = append(opts, testevents.WithSeed(*seed))
	}
	gen := testevents.New(*channel, opts...)

	var selected int64
	for i := 0; i < *batches; i++ {
		batch := gen.Generate(ctx)
		result, err := svc.SelectBatch(ctx, batch.Channel, batch.ID, batch.Input)
		if err != nil {
			os.Stderr.WriteString("batch failed: " + err.Error() + "\n")
			return
		}
		selected += result.SelectedCount()
	}

	fmt.Printf("channel %s: %d batches, %d events, %d selected\n",
		*channel, *batches, *batches**events, selected)

	steps, err := svc.Cutflow(ctx, *channel)
	if err != nil {
		os.Stderr.WriteString("cutflow read failed: " + err.Error() + "\n")
		return
	}
	fmt.Println("cut flow (pairs passing, cumulative):")
	for _, step := range steps {
		fmt.Printf("  %-16s %d\n", step.Name, step.Passed)
	}

	regions, err := svc.Regions(ctx, *channel)
	if err != nil {
		os.Stderr.WriteString("region read failed: " + err.Error() + "\n")
		return
	}
	fmt.Println("region counts (events, overlapping flags):")
	for _, region := range regions {
		fmt.Printf("  %-24s %d\n", region.Name, region.True)
	}
}
