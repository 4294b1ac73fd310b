// Admin CLI for the poverty analysis platform: connectivity checks,
// bulk CSV ingestion into the survey table and offline CSV exports.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/dadidelux/sheng-project/internal/config"
	"github.com/dadidelux/sheng-project/internal/database"
	"github.com/dadidelux/sheng-project/internal/export"
	"github.com/dadidelux/sheng-project/internal/query"
	"github.com/dadidelux/sheng-project/internal/schema"
	"github.com/dadidelux/sheng-project/internal/services"
	"github.com/dadidelux/sheng-project/internal/store"
	"github.com/dadidelux/sheng-project/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poverty-cli",
		Short: "Admin tooling for the poverty analysis platform",
	}
	rootCmd.AddCommand(pingCmd(), ingestCmd(), exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore connects to the database using the service configuration.
func openStore() (*database.DB, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Log)

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return db, store.New(db.Pool), nil
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, st, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := st.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func ingestCmd() *cobra.Command {
	var (
		file      string
		batchSize int
		workers   int
		truncate  bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Bulk-load survey rows from a CSV file into poverty_data",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, st, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if truncate {
				if err := st.TruncateHouseholds(cmd.Context()); err != nil {
					return err
				}
			}

			start := time.Now()
			loaded, skipped, err := ingestCSV(cmd.Context(), st, file, batchSize, workers)
			if err != nil {
				return err
			}
			logger.Info("ingest finished",
				"file", file, "loaded", loaded, "skipped", skipped,
				"elapsed", time.Since(start).String())
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file to load (required)")
	cmd.Flags().IntVar(&batchSize, "batch", 1000, "Rows per COPY batch")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent COPY workers")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Truncate poverty_data before loading")
	cmd.MarkFlagRequired("file")
	return cmd
}

// ingestCSV streams the file in batches through a worker pool so parsing
// and COPY round-trips overlap. Rows that fail to parse are skipped and
// counted, not fatal.
func ingestCSV(ctx context.Context, st *store.Store, file string, batchSize, workers int) (int64, int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read csv header: %w", err)
	}

	columns := schema.PovertyData.Columns()
	// Position of each schema column in the CSV, -1 when absent.
	positions := make([]int, len(columns))
	for i, col := range columns {
		positions[i] = -1
		for j, name := range header {
			if strings.TrimSpace(name) == col.Name {
				positions[i] = j
				break
			}
		}
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		loaded   int64
		skipped  int64
	)

	submit := func(batch [][]any) error {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			n, err := st.CopyHouseholds(ctx, batch)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			atomic.AddInt64(&loaded, n)
		})
		if err != nil {
			wg.Done()
			return fmt.Errorf("submit batch: %w", err)
		}
		return nil
	}

	batch := make([][]any, 0, batchSize)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loaded, skipped, fmt.Errorf("read csv row: %w", err)
		}

		row, err := parseRecord(columns, positions, record)
		if err != nil {
			skipped++
			logger.Warn("skipping malformed row", "error", err)
			continue
		}
		batch = append(batch, row)

		if len(batch) >= batchSize {
			if err := submit(batch); err != nil {
				return loaded, skipped, err
			}
			batch = make([][]any, 0, batchSize)
		}
	}
	if len(batch) > 0 {
		if err := submit(batch); err != nil {
			return loaded, skipped, err
		}
	}

	wg.Wait()
	return atomic.LoadInt64(&loaded), skipped, firstErr
}

func parseRecord(columns []schema.Column, positions []int, record []string) ([]any, error) {
	row := make([]any, len(columns))
	for i, col := range columns {
		pos := positions[i]
		if pos < 0 || pos >= len(record) {
			row[i] = nil
			continue
		}
		val, err := parseValue(col.Type, strings.TrimSpace(record[pos]))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		row[i] = val
	}
	return row, nil
}

func parseValue(t schema.ColumnType, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	switch t {
	case schema.TypeUInt8:
		n, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return nil, err
		}
		return int16(n), nil
	case schema.TypeFloat32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case schema.TypeDateTime:
		return time.Parse(time.RFC3339, raw)
	default:
		return raw, nil
	}
}

func exportCmd() *cobra.Command {
	var (
		table   string
		out     string
		columns string
		filters string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a filtered table view to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := schema.ByName(table)
			if !ok {
				return fmt.Errorf("unknown table %q", table)
			}

			// Unlike the HTTP boundary, a malformed filter here is an
			// operator mistake and should fail loudly.
			expr, err := query.ParseExpression(filters)
			if err != nil {
				return err
			}

			db, st, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			var requested []string
			if columns != "" {
				requested = strings.Split(columns, ",")
			}

			dataService := services.NewDataService(st)
			projection, rows, err := dataService.Export(cmd.Context(), t, requested, expr)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()

			if err := export.Write(f, projection, rows); err != nil {
				return err
			}
			logger.Info("export finished", "table", table, "rows", len(rows), "out", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", schema.PovertyData.Name(), "Table to export")
	cmd.Flags().StringVar(&out, "out", "export.csv", "Output file")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated column list")
	cmd.Flags().StringVar(&filters, "filters", "", "JSON filter expression")
	return cmd
}
