package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"ppeserver/internal/models"
	"ppeserver/internal/repository/sqlite"
	"ppeserver/internal/services/storage"
)

// Rebuilds the analyses table from annotated images on disk. Detections are
// not recoverable from filenames, so reindexed analyses carry the verdict and
// score only.
func main() {
	imagesDir := flag.String("images", "images", "Directory containing annotated images")
	dbPath := flag.String("db", filepath.Join("data", "analyses.db"), "Database path")
	flag.Parse()

	fmt.Printf("Reindexing images from %s into database %s\n", *imagesDir, *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	files, err := os.ReadDir(*imagesDir)
	if err != nil {
		log.Fatalf("Failed to read images directory: %v", err)
	}

	repo := sqlite.NewAnalysisRepository(db)

	inserted := 0
	skipped := 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".jpg" {
			continue
		}

		parsed, err := storage.ParseFilename(file.Name())
		if err != nil {
			log.Printf("Skipping %s: %v", file.Name(), err)
			skipped++
			continue
		}

		info, err := file.Info()
		if err != nil {
			log.Printf("Failed to get info for %s: %v", file.Name(), err)
			skipped++
			continue
		}

		id := parsed.ID
		if id == "" {
			id = uuid.NewString()
		}

		analysis := &models.Analysis{
			ID:            id,
			Site:          parsed.Site,
			Profile:       parsed.Profile,
			PersonPresent: parsed.Compliant, // A compliant verdict implies a person was in frame.
			Score:         parsed.Score,
			Compliant:     parsed.Compliant,
			Filename:      file.Name(),
			FilePath:      filepath.Join(*imagesDir, file.Name()),
			FileSize:      info.Size(),
			Timestamp:     parsed.Timestamp,
		}

		if err := repo.Insert(analysis); err != nil {
			log.Printf("Failed to insert %s: %v", file.Name(), err)
			skipped++
			continue
		}
		inserted++
	}

	fmt.Printf("Reindexed %d analyses\n", inserted)
	if skipped > 0 {
		fmt.Printf("Skipped %d files (invalid format or errors)\n", skipped)
	}

	if stats, err := repo.GetStats(); err == nil {
		fmt.Printf("\nDatabase statistics:\n")
		fmt.Printf("   Total analyses: %d\n", stats.TotalAnalyses)
		fmt.Printf("   Compliant: %d\n", stats.CompliantCount)
		fmt.Printf("   Average score: %.1f\n", stats.AverageScore)
		for site, count := range stats.PerSite {
			fmt.Printf("   Site %s: %d analyses\n", site, count)
		}
	}
}
