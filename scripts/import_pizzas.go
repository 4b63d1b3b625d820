package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/franciscosanchezn/pizzeria-dao/internal/config"
	"github.com/franciscosanchezn/pizzeria-dao/internal/database"
	"github.com/franciscosanchezn/pizzeria-dao/internal/store"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Imports pizzas into the configured database.
//
//	go run scripts/import_pizzas.go                   # built-in menu
//	go run scripts/import_pizzas.go -file menu.yaml   # catalogue file
func main() {
	_ = godotenv.Load()
	log.SetFormatter(&log.JSONFormatter{})

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Import stopped: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, imports the selected source and closes the database
// before returning
func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("import_pizzas", flag.ContinueOnError)
	file := flags.String("file", "", "YAML or JSON catalogue to import (default: built-in menu)")
	batchSize := flags.Int("batch-size", 0, "Rows committed per transaction (default: BULK_BATCH_SIZE)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	conf, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if *batchSize > 0 {
		conf.BatchSize = *batchSize
	}

	db, err := database.InitDatabase(conf.DatabaseConfig())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	if err := database.EnsureSchema(db); err != nil {
		return err
	}

	var source store.PizzaSource = store.CatalogSource{}
	if *file != "" {
		source = store.FileSource{Path: *file}
	}

	result, err := store.NewPizzaStore(db, conf.BatchSize).BulkInsert(context.Background(), source)
	fmt.Fprintf(out, "Committed %d batch(es), %d pizza(s) inserted\n", result.Batches, result.Inserted)
	return err
}
