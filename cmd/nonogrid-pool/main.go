package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"nonogrid/internal/config"
	"nonogrid/internal/domain"
	"nonogrid/internal/generator"
	"nonogrid/internal/infrastructure/storage"
	"nonogrid/internal/pool"
)

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad size %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseKeys(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	dataDir := flag.String("data", "", "data directory (overrides config)")
	sizesCSV := flag.String("sizes", "", "comma-separated grid sizes (overrides config)")
	diffsCSV := flag.String("difficulties", "", "comma-separated difficulty keys (overrides config)")
	count := flag.Int("count", 0, "seeds per pool (overrides config)")
	budget := flag.Int("budget", 0, "max candidate draws per pool (overrides config)")
	workers := flag.Int("workers", 0, "parallel curation workers (overrides config)")
	levelStr := flag.String("log-level", "", "debug|info|warn|error (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *sizesCSV != "" {
		sizes, err := parseSizes(*sizesCSV)
		if err != nil {
			logrus.WithError(err).Fatal("parsing -sizes")
		}
		cfg.Pool.Sizes = sizes
	}
	if *diffsCSV != "" {
		cfg.Pool.Difficulties = parseKeys(*diffsCSV)
	}
	if *count > 0 {
		cfg.Pool.Count = *count
	}
	if *budget > 0 {
		cfg.Pool.Budget = *budget
	}
	if *workers > 0 {
		cfg.Pool.Workers = *workers
	}
	if *levelStr != "" {
		cfg.LogLevel = *levelStr
	}

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	table, err := cfg.Table()
	if err != nil {
		log.WithError(err).Fatal("building difficulty table")
	}

	var cfgs []pool.Config
	for _, size := range cfg.Pool.Sizes {
		if !domain.ValidSize(size) {
			log.WithFields(logrus.Fields{"size": size}).Fatal("size out of bounds")
		}
		for _, key := range cfg.Pool.Difficulties {
			band, ok := table.Lookup(key)
			if !ok {
				log.WithFields(logrus.Fields{"difficulty": key}).Fatal("unknown difficulty")
			}
			cfgs = append(cfgs, pool.Config{Size: size, Difficulty: band, Count: cfg.Pool.Count})
		}
	}
	if len(cfgs) == 0 {
		log.Fatal("nothing to curate: no sizes or difficulties configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cur := pool.New(generator.New(), log)
	cur.Workers = cfg.Pool.Workers
	cur.Budget = cfg.Pool.Budget

	log.WithFields(logrus.Fields{
		"configs": len(cfgs), "count": cfg.Pool.Count, "budget": cfg.Pool.Budget, "workers": cfg.Pool.Workers,
	}).Info("curating seed pools")
	results := cur.Curate(ctx, cfgs)

	store := storage.NewFS(cfg.DataDir)
	failed := false
	for _, res := range results {
		if err := store.SavePool(ctx, res.Pool); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"size": res.Config.Size, "difficulty": res.Config.Difficulty.Key,
			}).Error("saving pool")
			failed = true
		}
	}

	printSummary(results)
	if ctx.Err() != nil {
		log.Warn("curation interrupted, pools saved partially filled")
	}
	if failed {
		os.Exit(1)
	}
}

func printSummary(results []pool.Result) {
	colorize := term.IsTerminal(int(os.Stdout.Fd()))
	paint := func(st color.Style, s string) string {
		if !colorize {
			return s
		}
		return st.Sprint(s)
	}
	header := color.Style{color.FgCyan, color.OpBold}
	full := color.Style{color.FgGreen}
	short := color.Style{color.FgYellow, color.OpBold}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width > 64 {
		width = 64
	}

	fmt.Println(paint(header, "seed pools"))
	fmt.Println(strings.Repeat("-", width))
	for _, res := range results {
		label := fmt.Sprintf("%-8s %2dx%-2d", res.Config.Difficulty.Key, res.Config.Size, res.Config.Size)
		stat := fmt.Sprintf("%d/%d seeds, %d attempts", len(res.Pool.Seeds), res.Config.Count, res.Attempts)
		if len(res.Pool.Seeds) < res.Config.Count {
			fmt.Printf("%s  %s\n", label, paint(short, stat))
		} else {
			fmt.Printf("%s  %s\n", label, paint(full, stat))
		}
	}
}
