package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"fintrack/pkg/importer"
	"fintrack/storage"
)

// import_csv ingests bank-export CSV files as transactions for a user.
// One-shot with -file, or -dir with -watch to keep processing files dropped
// into a directory.
func main() {
	username := flag.String("username", "", "owner of the imported transactions")
	file := flag.String("file", "", "import a single CSV file and exit")
	dir := flag.String("dir", "", "directory of CSV files (with -watch, a drop directory)")
	watch := flag.Bool("watch", false, "keep watching -dir for new files")
	flag.Parse()

	if strings.TrimSpace(*username) == "" || (*file == "" && *dir == "") {
		fmt.Println("usage: go run ./cmd/import_csv -username <name> (-file <path> | -dir <path> [-watch])")
		flag.PrintDefaults()
		os.Exit(2)
	}

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := storage.Open(dsn, false)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	ctx := context.Background()
	user, err := storage.NewUserStore(db).ByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("user %s not found", *username)
	}
	store := storage.NewTransactionStore(db)

	runImport := func(path string) {
		n, err := importer.ImportFile(ctx, store, user.ID, path)
		if err != nil {
			log.Printf("import %s failed: %v", path, err)
			return
		}
		log.Printf("imported %d transactions from %s", n, path)
	}

	if *file != "" {
		runImport(*file)
		return
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		runImport(filepath.Join(*dir, e.Name()))
	}

	if *watch {
		if err := importer.Watch(ctx, *dir, runImport); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}
