package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/pterm/pterm"
	"github.com/rawbytedev/vecoption"
	"github.com/rawbytedev/vecoption/pkg/optwire"
)

type profileConfig struct {
	rounds     int
	size       int
	memprofile string
	compress   bool
}

type profileResult struct {
	push, extendNone, fold, encode, setAllNone time.Duration
	slots, present                             int
	sum                                        int64
	frame                                      int
	capacity                                   vecoption.CapacityInfo
}

func runProfile(args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	cfg := profileConfig{}
	fs.IntVar(&cfg.rounds, "n", 100, "number of rounds")
	fs.IntVar(&cfg.size, "size", 10000, "slots pushed per round")
	fs.StringVar(&cfg.memprofile, "memprofile", "", "write a heap profile to this file")
	fs.BoolVar(&cfg.compress, "compress", false, "compress snapshots with zstd")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.rounds <= 0 || cfg.size < 0 {
		return fmt.Errorf("invalid workload: %d rounds of %d slots", cfg.rounds, cfg.size)
	}
	if cfg.memprofile != "" {
		runtime.MemProfileRate = 1
	}
	res, err := profile(cfg)
	if err != nil {
		return err
	}
	renderProfile(cfg, res)
	if cfg.memprofile != "" {
		if err := writeHeapProfile(cfg.memprofile); err != nil {
			return err
		}
		pterm.Info.Printf("heap profile written to %s\n", cfg.memprofile)
	}
	return nil
}

// profile pushes size slots, every fourth one absent, then appends as many
// absent slots, folds over the sequence, snapshots it and clears it.
func profile(cfg profileConfig) (profileResult, error) {
	var res profileResult
	enc, err := optwire.NewEncoder[int64](optwire.Options{Compression: cfg.compress, Checksum: true})
	if err != nil {
		return res, err
	}
	defer enc.Close()
	for r := 0; r < cfg.rounds; r++ {
		v := vecoption.New[int64]()

		t0 := time.Now()
		for i := 0; i < cfg.size; i++ {
			if i%4 == 3 {
				v.PushNone()
				continue
			}
			v.PushValue(int64(i))
		}
		res.push += time.Since(t0)

		t0 = time.Now()
		v.ExtendNone(cfg.size)
		res.extendNone += time.Since(t0)

		t0 = time.Now()
		res.sum = vecoption.Fold(v, int64(0), func(acc int64, o *vecoption.Option[int64]) int64 {
			return acc + o.UnwrapOr(0)
		})
		res.fold += time.Since(t0)

		t0 = time.Now()
		frame, err := enc.Encode(v)
		if err != nil {
			return res, err
		}
		res.encode += time.Since(t0)
		res.frame = len(frame)
		res.slots, res.present, res.capacity = v.Len(), v.Count(), v.CapacityInfo()

		t0 = time.Now()
		v.SetAllNone()
		res.setAllNone += time.Since(t0)
		v.Release()
	}
	tracer().Debugf("profile: %d rounds done, checksum %d", cfg.rounds, res.sum)
	return res, nil
}

func renderProfile(cfg profileConfig, res profileResult) {
	per := func(d time.Duration) string {
		return (d / time.Duration(cfg.rounds)).String()
	}
	data := [][]string{
		{"Operation", "Total", "Per round"},
		{"push", res.push.String(), per(res.push)},
		{"extend-none", res.extendNone.String(), per(res.extendNone)},
		{"fold", res.fold.String(), per(res.fold)},
		{"encode", res.encode.String(), per(res.encode)},
		{"set-all-none", res.setAllNone.String(), per(res.setAllNone)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("slots %d, present %d, capacity data=%d flag=%d\n",
		res.slots, res.present, res.capacity.Data, res.capacity.Flag)
	pterm.Printf("snapshot %d bytes (compressed=%v), fold sum %d\n", res.frame, cfg.compress, res.sum)
}

func writeHeapProfile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
