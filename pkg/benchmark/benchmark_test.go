package benchmark

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/pingcap/go-ycsb/pkg/generator"
	"github.com/spaghetti-lover/persql/pkg/logging"
	"github.com/spaghetti-lover/persql/pkg/storage"
)

const maxRows = storage.TableMaxRows - 1

// fillTable inserts maxRows rows with zipfian distributed ids
func fillTable(b *testing.B, table *storage.Table, seed int64) {
	b.Helper()

	r := rand.New(rand.NewSource(seed))
	zip := generator.NewZipfianWithRange(0, 1<<16, 0.99)

	for i := 0; i < maxRows; i++ {
		id := uint32(zip.Next(r))
		row := storage.Row{
			ID:       id,
			Username: fmt.Sprintf("user%d", id),
			Email:    fmt.Sprintf("user%d@example.com", id),
		}
		if err := storage.TableEnd(table).AddRow(row); err != nil {
			b.Fatalf("Insert failed at row %d: %v", i, err)
		}
	}
}

func openTable(b *testing.B, path string) *storage.Table {
	b.Helper()
	table, err := storage.OpenTable(*logging.Discard(), path)
	if err != nil {
		b.Fatalf("Failed to open table: %v", err)
	}
	return table
}

// BenchmarkFillTable measures inserting a full table and flushing it
func BenchmarkFillTable(b *testing.B) {
	dir := b.TempDir()

	b.ResetTimer()
	start := time.Now()

	for n := 0; n < b.N; n++ {
		table := openTable(b, filepath.Join(dir, fmt.Sprintf("fill_%d.db", n)))
		fillTable(b, table, int64(n))
		if err := table.Close(); err != nil {
			b.Fatalf("Close failed: %v", err)
		}
	}

	duration := time.Since(start)
	b.StopTimer()

	rows := float64(maxRows * b.N)
	b.Logf("\n📊 Fill Benchmark Results:")
	b.Logf("   Rows: %.0f", rows)
	b.Logf("   Throughput: %.2f rows/sec", rows/duration.Seconds())
}

// BenchmarkScan measures a full cursor scan over cached pages
func BenchmarkScan(b *testing.B) {
	table := openTable(b, filepath.Join(b.TempDir(), "scan.db"))
	defer table.Close()
	fillTable(b, table, 1)

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		count := 0
		for c := storage.TableStart(table); !c.EndOfTable(); c.Advance() {
			if _, err := c.Value(); err != nil {
				b.Fatalf("Value failed: %v", err)
			}
			count++
		}
		if count != maxRows {
			b.Fatalf("Scanned %d rows, expected %d", count, maxRows)
		}
	}

	b.StopTimer()
	b.Logf("   Pager: %s", table.Stats().Pager)
}

// BenchmarkColdScan measures reopening the file and scanning it from disk
func BenchmarkColdScan(b *testing.B) {
	dbPath := filepath.Join(b.TempDir(), "cold.db")

	table := openTable(b, dbPath)
	fillTable(b, table, 2)
	if err := table.Close(); err != nil {
		b.Fatalf("Close failed: %v", err)
	}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		table := openTable(b, dbPath)
		for c := storage.TableStart(table); !c.EndOfTable(); c.Advance() {
			if _, err := c.Value(); err != nil {
				b.Fatalf("Value failed: %v", err)
			}
		}
		if err := table.Close(); err != nil {
			b.Fatalf("Close failed: %v", err)
		}
	}
}

// BenchmarkRandomRead measures uniform random row lookups
func BenchmarkRandomRead(b *testing.B) {
	table := openTable(b, filepath.Join(b.TempDir(), "random.db"))
	defer table.Close()
	fillTable(b, table, 3)

	r := rand.New(rand.NewSource(42))
	uniform := generator.NewUniform(0, maxRows-1)

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		target := int(uniform.Next(r))
		c := storage.TableStart(table)
		for c.RowNum() < target {
			c.Advance()
		}
		if _, err := c.Value(); err != nil {
			b.Fatalf("Value failed at row %d: %v", target, err)
		}
	}
}
