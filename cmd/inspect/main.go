// Inspect a snapshot file: load it and print record and index stats.
// Usage: go run ./cmd/inspect <snapshot> [table-name] [compression]
// Example: go run ./cmd/inspect students.db students gzip
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"

	"JsonDB/node"
	"JsonDB/table"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <snapshot> [table-name] [compression]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s students.db students gzip\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]
	name := "students"
	if len(os.Args) > 2 {
		name = os.Args[2]
	}
	comp := table.CompressionGzip
	if len(os.Args) > 3 {
		switch os.Args[3] {
		case "none":
			comp = table.CompressionNone
		case "gzip":
			comp = table.CompressionGzip
		case "snappy":
			comp = table.CompressionSnappy
		default:
			slog.Error("unknown compression", "name", os.Args[3])
			os.Exit(1)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		slog.Error("stat snapshot", "err", err)
		os.Exit(1)
	}

	t, err := table.Create(name, node.DefaultOptions())
	if err != nil {
		slog.Error("create table", "err", err)
		os.Exit(1)
	}
	defer t.Close()

	if err := t.LoadWith(path, comp); err != nil {
		slog.Error("load snapshot", "err", err)
		os.Exit(1)
	}

	fmt.Printf("snapshot:  %s (%s on disk)\n", path, humanize.Bytes(uint64(info.Size())))
	fmt.Printf("table:     %s\n", t.Name())
	fmt.Printf("records:   %s\n", humanize.Comma(int64(t.Len())))
	if tn := t.Node(); tn != nil {
		fmt.Printf("mode:      %v\n", tn.Kind())
	}
	for _, idxName := range t.IndexNames() {
		if idx, ok := t.Index(idxName); ok {
			fmt.Printf("index:     %s unique=%v entries=%s\n",
				idxName, idx.IsUnique(), humanize.Comma(int64(idx.Len())))
		}
	}
}
