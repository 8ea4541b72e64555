// Command export writes the instances of one split to stdout, one JSON
// object per line. The split is the only argument; everything else comes
// from the same environment as the server.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/mentionset/internal/config"
	"github.com/dgallion1/mentionset/internal/dataset"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: export train|dev|test")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader, err := dataset.OpenConfig(cfg, nil, log)
	if err != nil {
		log.Error("failed to load corpus", "error", err)
		os.Exit(1)
	}

	n, err := export(ctx, reader, os.Args[1], os.Stdout)
	if err != nil {
		log.Error("export failed", "split", os.Args[1], "written", n, "error", err)
		os.Exit(1)
	}
	log.Info("export complete", "split", os.Args[1], "written", n)
}

func export(ctx context.Context, reader *dataset.Reader, split string, w io.Writer) (int, error) {
	seq, err := reader.ReadSplit(ctx, split)
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	n := 0
	for inst, err := range seq {
		if err != nil {
			bw.Flush()
			return n, err
		}
		if err := enc.Encode(inst); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}
