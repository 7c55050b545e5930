package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/itinerary"
	"tour-planner-backend/internal/parse"
	"tour-planner-backend/internal/store"
)

type planOptions struct {
	start    string
	end      string
	at       string
	buffer   int
	visits   []string
	surprise int
	seed     uint64
}

func newPlanCmd(a *app) *cobra.Command {
	var opts planOptions
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a schedule without touching the database",
		Example: `  plannerd plan --start 2024-05-01 --visit "Jebel Jais=90" --visit "Dhayah Fort=1h"
  plannerd plan --start 2024-05-01 --end 2024-05-02 --surprise 3 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng itinerary.Rand
			if opts.surprise > 0 {
				seed := opts.seed
				if !cmd.Flags().Changed("seed") {
					seed = rand.Uint64()
				}
				rng = rand.New(rand.NewPCG(seed, seed))
			}
			if !cmd.Flags().Changed("buffer") {
				opts.buffer = a.cfg.Planner.BufferMinutes
			}
			return runPlan(cmd.OutOrStdout(), a.cfg, opts, rng)
		},
	}
	cmd.Flags().StringVar(&opts.start, "start", "", "first trip day, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.end, "end", "", "last trip day, YYYY-MM-DD (default start)")
	cmd.Flags().StringVar(&opts.at, "at", "", "daily start time, e.g. 09:00 or 9am (default planner.daily_start)")
	cmd.Flags().IntVar(&opts.buffer, "buffer", itinerary.DefaultBufferMinutes, "travel minutes between visits")
	cmd.Flags().StringArrayVar(&opts.visits, "visit", nil, `visit as "Name=minutes", repeatable`)
	cmd.Flags().IntVar(&opts.surprise, "surprise", 0, "pick this many seeded attractions at random instead of --visit")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for --surprise")
	return cmd
}

// parseVisit splits "Name=minutes". Known attractions get their description.
func parseVisit(raw string, known map[string]itinerary.Place) (itinerary.Visit, error) {
	i := strings.LastIndex(raw, "=")
	if i <= 0 {
		return itinerary.Visit{}, fmt.Errorf("invalid --visit %q, want Name=minutes", raw)
	}
	name := strings.TrimSpace(raw[:i])
	minutes, err := parse.Minutes(raw[i+1:])
	if err != nil {
		return itinerary.Visit{}, fmt.Errorf("invalid --visit %q: %w", raw, err)
	}
	place, ok := known[name]
	if !ok {
		place = itinerary.Place{Name: name}
	}
	return itinerary.Visit{Place: place, Minutes: minutes}, nil
}

func runPlan(w io.Writer, cfg *config.Config, opts planOptions, rng itinerary.Rand) error {
	loc := cfg.Planner.Location()
	p := cfg.Planner
	limits := itinerary.Limits{MinMinutes: p.MinMinutes, MaxMinutes: p.MaxMinutes, MinPlaces: 1, MaxPlaces: p.MaxPlaces}

	attractions := store.DefaultAttractions()
	var visits []itinerary.Visit
	if opts.surprise > 0 {
		if len(opts.visits) > 0 {
			return fmt.Errorf("--surprise and --visit cannot be combined")
		}
		var err error
		if visits, err = itinerary.Surprise(rng, attractions, opts.surprise, p.SurpriseDurations); err != nil {
			return err
		}
	} else {
		known := make(map[string]itinerary.Place, len(attractions))
		for _, a := range attractions {
			known[a.Name] = a
		}
		for _, raw := range opts.visits {
			v, err := parseVisit(raw, known)
			if err != nil {
				return err
			}
			visits = append(visits, v)
		}
	}
	if err := limits.Check(visits); err != nil {
		return err
	}

	start := dateIn(time.Now(), loc)
	if opts.start != "" {
		var err error
		if start, err = parse.Date(opts.start, loc); err != nil {
			return err
		}
	}
	end := start
	if opts.end != "" {
		var err error
		if end, err = parse.Date(opts.end, loc); err != nil {
			return err
		}
	}
	if p.MaxTripDays > 0 && itinerary.TripDays(start, end) > p.MaxTripDays {
		return fmt.Errorf("trips are limited to %d days", p.MaxTripDays)
	}
	at := opts.at
	if at == "" {
		at = p.DailyStart
	}
	clock, err := parse.Clock(at)
	if err != nil {
		return err
	}

	sched, err := itinerary.Build(itinerary.Request{
		Visits:        visits,
		Start:         start,
		End:           end,
		DailyStart:    clock,
		BufferMinutes: opts.buffer,
	})
	if err != nil {
		return err
	}
	printSchedule(w, sched, visits, p.Locality)
	return nil
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func printSchedule(w io.Writer, sched *itinerary.Schedule, visits []itinerary.Visit, locality string) {
	fmt.Fprintln(w, "Trip Schedule")
	for _, day := range sched.Days {
		fmt.Fprintf(w, "\n%s\n", day.Date.Format("Monday, 02 Jan 2006"))
		if len(day.Entries) == 0 {
			fmt.Fprintln(w, "  (free day)")
		}
		for _, e := range day.Entries {
			fmt.Fprintf(w, "  %s → Arrive: %s | Leave: %s\n", e.Place.Name, e.Arrive.Format("03:04 PM"), e.Depart.Format("03:04 PM"))
		}
	}

	fmt.Fprintf(w, "\nGoogle Maps Route\n  %s\n", itinerary.RouteURL(itinerary.Names(visits), locality))

	fmt.Fprintln(w, "\nWhy These Places?")
	for _, v := range visits {
		desc := v.Place.Description
		if desc == "" {
			desc = "your pick"
		}
		fmt.Fprintf(w, "  %s → %s\n", v.Place.Name, desc)
	}
}
