package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"ppeserver/internal/logger"
)

const timestampLayout = "2006-01-02_15-04-05"

// Image is one annotated analysis image waiting to be flushed to disk.
type Image struct {
	ID        string
	Timestamp time.Time
	Site      string
	Profile   string
	Compliant bool
	Score     int
	Data      []byte
}

// BufferService batches annotated images in memory and writes them to disk on
// an interval, so a burst of uploads does not turn into a burst of disk writes.
type BufferService struct {
	imagesDir   string
	images      []Image
	bufferLimit int
	logger      *logger.Logger
	mu          sync.Mutex
}

func NewBufferService(imagesDir string, bufferLimit int, logger *logger.Logger) *BufferService {
	return &BufferService{
		imagesDir:   imagesDir,
		bufferLimit: bufferLimit,
		images:      make([]Image, 0),
		logger:      logger,
	}
}

// Run flushes the buffer on the given interval (seconds) until the process exits.
func (s *BufferService) Run(flushInterval int) {
	ticker := time.NewTicker(time.Duration(flushInterval) * time.Second)
	defer ticker.Stop()

	for {
		<-ticker.C
		s.FlushImages()
	}
}

// Add queues an annotated image for the next flush. When the buffer is full
// the image is dropped; the analysis record in the database survives either way.
func (s *BufferService) Add(img Image) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.images) >= s.bufferLimit {
		s.logger.Warning("Image buffer full (%d), dropping image for site %s", s.bufferLimit, img.Site)
		return
	}

	s.images = append(s.images, img)
	s.logger.Info("Buffer size: %d/%d", len(s.images), s.bufferLimit)
}

// ImagePath returns the full on-disk path for a flushed image name.
func (s *BufferService) ImagePath(filename string) string {
	return filepath.Join(s.imagesDir, filename)
}

// SanitizeField maps an externally supplied name onto the character set the
// filename scheme can carry: underscores separate the fields, so they (and
// whitespace) are replaced with hyphens.
func SanitizeField(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r == '_' || r == ' ' || r == '\t' {
			return '-'
		}
		return r
	}, s)
}

// Filename returns the on-disk name for an image. The analysis ID keeps two
// analyses from the same second apart. Site and profile are sanitized so the
// name always parses back.
func Filename(img Image) string {
	verdict := "flagged"
	if img.Compliant {
		verdict = "compliant"
	}
	return fmt.Sprintf("%s_%s_%s_%s_%d_%s.jpg",
		img.Timestamp.Format(timestampLayout), SanitizeField(img.Site), SanitizeField(img.Profile),
		verdict, img.Score, img.ID)
}

// ParseFilename recovers the analysis fields from an on-disk image name.
// Inverse of Filename; used when reindexing the database from disk.
func ParseFilename(name string) (Image, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) != 7 {
		return Image{}, fmt.Errorf("unexpected filename format: %s", name)
	}

	timestamp, err := time.Parse(timestampLayout, parts[0]+"_"+parts[1])
	if err != nil {
		return Image{}, fmt.Errorf("invalid timestamp in filename %s: %w", name, err)
	}

	score, err := strconv.Atoi(parts[5])
	if err != nil {
		return Image{}, fmt.Errorf("invalid score in filename %s: %w", name, err)
	}

	return Image{
		ID:        parts[6],
		Timestamp: timestamp,
		Site:      parts[2],
		Profile:   parts[3],
		Compliant: parts[4] == "compliant",
		Score:     score,
	}, nil
}

// FlushImages writes all buffered images to the images directory.
func (s *BufferService) FlushImages() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.images) == 0 {
		return
	}

	if err := os.MkdirAll(s.imagesDir, 0755); err != nil {
		s.logger.Error("Error creating directory: %v", err)
		return
	}

	for _, img := range s.images {
		fullpath := filepath.Join(s.imagesDir, Filename(img))

		if err := os.WriteFile(fullpath, img.Data, 0644); err != nil {
			s.logger.Error("Error saving image %s: %v", fullpath, err)
			continue
		}
	}

	s.logger.Info("Flushed %d images to disk", len(s.images))
	s.images = s.images[:0] // Clear buffer
}
