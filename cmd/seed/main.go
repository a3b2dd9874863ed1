// Seed program: builds a students table with indexes, inserts sample
// documents, runs the query surface and writes a snapshot.
// Run: go run ./cmd/seed [config.toml]
// Then inspect: go run ./cmd/inspect students.db
package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"

	"JsonDB/config"
	"JsonDB/predicate"
	"JsonDB/table"
)

const snapshotPath = "students.db"

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	cfg := config.Default()
	if len(os.Args) > 1 {
		var err error
		cfg, err = config.FromFile(os.Args[1])
		if err != nil {
			slog.Error("load config", "err", err)
			os.Exit(1)
		}
	}

	t, err := table.Create("students", cfg.NodeOptions())
	if err != nil {
		slog.Error("create table", "err", err)
		os.Exit(1)
	}
	defer t.Close()

	numericCmp := func(a, b string) int {
		ai, _ := strconv.Atoi(a)
		bi, _ := strconv.Atoi(b)
		return ai - bi
	}
	if err := t.AddIndexCmp("age", false, numericCmp, nil, "age"); err != nil {
		slog.Error("add index", "name", "age", "err", err)
		os.Exit(1)
	}
	if err := t.AddIndex("name_sex", false, "name", "sex"); err != nil {
		slog.Error("add index", "name", "name_sex", "err", err)
		os.Exit(1)
	}

	docs := []string{
		`{"name":"张三1","sex":"male","age":18}`,
		`{"name":"张三2","sex":"female","age":21}`,
		`{"name":"李四","sex":"male","age":25}`,
		`{"name":"王五","sex":"female","age":30}`,
	}
	for _, d := range docs {
		if _, err := t.Insert(d); err != nil {
			slog.Error("insert", "err", err)
			os.Exit(1)
		}
	}
	slog.Info("inserted", "records", t.Len())

	byPrefix, err := t.LeftFind("name_sex", "张三")
	if err != nil {
		slog.Error("left find", "err", err)
		os.Exit(1)
	}
	names := make([]string, 0, len(byPrefix))
	for _, doc := range byPrefix {
		names = append(names, doc.JSON())
	}
	slog.Info("left find 张三", "hits", strings.Join(names, " "))

	inRange, err := t.RangeFind("age", 20, 30, nil)
	if err != nil {
		slog.Error("range find", "err", err)
		os.Exit(1)
	}
	slog.Info("range find age 20..30", "hits", len(inRange))

	adults := t.Filter(predicate.Ge("age", 21))
	slog.Info("filter age>=21", "hits", len(adults))

	comp, err := cfg.Compression()
	if err != nil {
		slog.Error("compression", "err", err)
		os.Exit(1)
	}
	if err := t.SerializeWith(snapshotPath, comp); err != nil {
		slog.Error("serialize", "err", err)
		os.Exit(1)
	}
	slog.Info("snapshot written", "path", snapshotPath, "compression", cfg.Snapshot.Compression)
}
