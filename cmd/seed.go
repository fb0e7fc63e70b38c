package cmd

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/longview/internal/config"
	"github.com/zjrosen/longview/internal/infrastructure/sqlite"
	"github.com/zjrosen/longview/internal/paths"
	"github.com/zjrosen/longview/internal/records"
)

// seedBatchSize is how many records one insert transaction covers.
const seedBatchSize = 1000

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the records database with sample data",
	Long:  `Fill the records database with generated sample records for trying out the viewer. Existing records are kept unless --reset is given.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntP("count", "n", 100000, "number of records to generate")
	seedCmd.Flags().Bool("reset", false, "delete existing records first")
	seedCmd.Flags().StringP("db", "d", "", "path to the records database file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	reset, _ := cmd.Flags().GetBool("reset")
	if count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", count)
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	dbPath = paths.ResolveDBPath(dbPath, config.DefaultDBPath())

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := db.RecordRepository()
	start := 0
	if reset {
		if err := repo.DeleteAll(); err != nil {
			return fmt.Errorf("clearing records: %w", err)
		}
	} else {
		existing, err := repo.Count()
		if err != nil {
			return fmt.Errorf("counting records: %w", err)
		}
		start = existing
	}

	rng := rand.New(rand.NewSource(int64(start)))
	for off := 0; off < count; off += seedBatchSize {
		n := min(seedBatchSize, count-off)
		batch := make([]records.Record, n)
		for i := range n {
			seq := start + off + i
			batch[i] = sampleRecord(rng, seq)
		}
		if err := repo.Insert(batch); err != nil {
			return fmt.Errorf("inserting records: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records into %s\n", count, dbPath)
	return nil
}

var (
	seedLevels = []records.Level{
		records.LevelDebug, records.LevelInfo, records.LevelInfo,
		records.LevelInfo, records.LevelWarn, records.LevelError,
	}
	seedSubjects = []string{
		"request handled", "cache miss", "connection reset by peer",
		"slow query detected", "worker restarted", "checkpoint written",
		"retrying upstream call", "configuration reloaded", "queue drained",
		"session expired",
	}
	seedWords = strings.Fields(
		"the batch completed after retries upstream responded with status " +
			"partial payload written to disk replica lag exceeded threshold " +
			"connection pool exhausted waiting for slot handler returned early")
)

// sampleRecord generates one deterministic-looking record. Roughly a third
// of records carry a multi-line body so row heights vary like real data.
func sampleRecord(rng *rand.Rand, seq int) records.Record {
	level := seedLevels[rng.Intn(len(seedLevels))]
	title := fmt.Sprintf("%s #%d", seedSubjects[rng.Intn(len(seedSubjects))], seq)

	body := ""
	if rng.Intn(3) == 0 {
		n := 5 + rng.Intn(25)
		words := make([]string, n)
		for i := range n {
			words[i] = seedWords[rng.Intn(len(seedWords))]
		}
		body = strings.Join(words, " ")
	}

	return records.New(seq, title, body, level)
}
