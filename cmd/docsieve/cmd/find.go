package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solatis/docsieve/internal/collection"
	"github.com/solatis/docsieve/internal/core/config"
	"github.com/solatis/docsieve/internal/core/db"
	"github.com/solatis/docsieve/internal/document"
	"github.com/solatis/docsieve/internal/filter"
)

var (
	findInput      string
	findCollection string
	findCountOnly  bool
)

var findCmd = &cobra.Command{
	Use:   "find <filter-json>",
	Short: "Select documents matching a filter condition",
	Long: `Compiles the filter condition once and streams documents through it,
printing matches as JSONL. Documents come from a JSONL file (--input) or
from a stored collection (--db-url and --collection).`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringVar(&findInput, "input", "", "JSONL input file (- for stdin)")
	findCmd.Flags().StringVar(&findCollection, "collection", "", "stored collection to scan (default from config)")
	findCmd.Flags().BoolVar(&findCountOnly, "count", false, "print only the number of matches")
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var spec any
	if err := json.Unmarshal([]byte(args[0]), &spec); err != nil {
		return fmt.Errorf("invalid filter JSON: %w", err)
	}

	if findInput != "" {
		return findFromJSONL(spec)
	}
	return findFromStore(cfg, spec)
}

// findFromJSONL streams documents from a file through the compiled query,
// holding only one document in memory at a time.
func findFromJSONL(spec any) error {
	query, err := filter.Compile(spec)
	if err != nil {
		return err
	}

	reader, closer, err := openInput(findInput)
	if err != nil {
		return err
	}
	defer closer()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	matched := 0
	lineNo := 0
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		doc, err := document.FromJSON(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !query.Matches(doc) {
			continue
		}
		matched++
		if !findCountOnly {
			out.Write(line)
			out.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if findCountOnly {
		fmt.Fprintln(out, matched)
	}
	return nil
}

// findFromStore loads a stored collection and scans it through the filter,
// sharding across the configured worker pool.
func findFromStore(cfg *config.Config, spec any) error {
	if dbURL == "" {
		return fmt.Errorf("--db-url or --input required")
	}
	if findCollection == "" {
		findCollection = cfg.Collection
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

	docs, err := store.List(findCollection)
	if err != nil {
		return err
	}

	matched, err := collection.New(docs...).FindParallel(spec, cfg.Workers)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if findCountOnly {
		fmt.Fprintln(out, len(matched))
		return nil
	}
	for _, doc := range matched {
		body, err := doc.JSON()
		if err != nil {
			return err
		}
		out.Write(body)
		out.WriteByte('\n')
	}
	return nil
}
