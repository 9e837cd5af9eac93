package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/solatis/docsieve/internal/core/config"
	"github.com/solatis/docsieve/internal/core/db"
	"github.com/solatis/docsieve/internal/document"
)

var (
	insertInput      string
	insertCollection string
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert JSONL documents into the store",
	RunE:  runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)
	insertCmd.Flags().StringVar(&insertInput, "input", "-", "JSONL input file (- for stdin)")
	insertCmd.Flags().StringVar(&insertCollection, "collection", "", "target collection (default from config)")
}

func runInsert(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if insertCollection == "" {
		insertCollection = cfg.Collection
	}

	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	store, err := db.NewStore(database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	reader, closer, err := openInput(insertInput)
	if err != nil {
		return err
	}
	defer closer()

	inserted := 0
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if inserted >= cfg.MaxBatchSize {
			return fmt.Errorf("batch size exceeds maximum of %d documents", cfg.MaxBatchSize)
		}

		doc, err := document.FromJSON(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", inserted+1, err)
		}
		if _, err := store.Insert(insertCollection, doc); err != nil {
			return err
		}
		inserted++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	log.Printf("inserted %d documents into collection %q", inserted, insertCollection)
	return nil
}

// openInput returns a reader for a file path or stdin when path is "-".
func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, f.Close, nil
}
