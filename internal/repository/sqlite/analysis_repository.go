package sqlite

import (
	"database/sql"
	"fmt"

	"ppeserver/internal/dto"
	"ppeserver/internal/models"
)

// AnalysisRepository implements repository.AnalysisRepository for SQLite.
type AnalysisRepository struct {
	db *DB
}

// NewAnalysisRepository creates a new SQLite analysis repository.
func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Insert adds a new analysis record to the database.
func (r *AnalysisRepository) Insert(analysis *models.Analysis) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		INSERT INTO analyses (id, site, profile, person_present, score, compliant, filename, filepath, filesize, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, analysis.ID, analysis.Site, analysis.Profile, analysis.PersonPresent, analysis.Score,
		analysis.Compliant, analysis.Filename, analysis.FilePath, analysis.FileSize, analysis.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetByID retrieves an analysis by its ID.
func (r *AnalysisRepository) GetByID(id string) (*models.Analysis, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var analysis models.Analysis
	err := r.db.Conn().QueryRow(`
		SELECT id, site, profile, person_present, score, compliant, filename, filepath, filesize, timestamp
		FROM analyses WHERE id = ?
	`, id).Scan(&analysis.ID, &analysis.Site, &analysis.Profile, &analysis.PersonPresent, &analysis.Score,
		&analysis.Compliant, &analysis.Filename, &analysis.FilePath, &analysis.FileSize, &analysis.Timestamp)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &analysis, nil
}

// filterClauses appends WHERE conditions for the filter to the query.
func filterClauses(query string, args []interface{}, filter *dto.AnalysisFilters) (string, []interface{}) {
	if filter.Site != "" {
		query += " AND a.site = ?"
		args = append(args, filter.Site)
	}

	if filter.Profile != "" {
		query += " AND a.profile = ?"
		args = append(args, filter.Profile)
	}

	if filter.Category != "" {
		query += " AND d.category = ?"
		args = append(args, filter.Category)
	}

	if filter.Compliant != nil {
		query += " AND a.compliant = ?"
		args = append(args, *filter.Compliant)
	}

	if !filter.DateAfter.IsZero() {
		query += " AND DATE(a.timestamp) >= DATE(?)"
		args = append(args, filter.DateAfter)
	}

	if !filter.DateBefore.IsZero() {
		query += " AND DATE(a.timestamp) <= DATE(?)"
		args = append(args, filter.DateBefore)
	}

	return query, args
}

// GetAll retrieves analyses based on filter criteria.
func (r *AnalysisRepository) GetAll(filter *dto.AnalysisFilters) ([]models.Analysis, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT DISTINCT a.id, a.site, a.profile, a.person_present, a.score, a.compliant, a.filename, a.filepath, a.filesize, a.timestamp
		FROM analyses a
		LEFT JOIN detections d ON a.id = d.analysis_id
		WHERE 1=1
	`
	args := []interface{}{}
	query, args = filterClauses(query, args, filter)

	query += " ORDER BY a.timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var analysis models.Analysis
		if err := rows.Scan(&analysis.ID, &analysis.Site, &analysis.Profile, &analysis.PersonPresent, &analysis.Score,
			&analysis.Compliant, &analysis.Filename, &analysis.FilePath, &analysis.FileSize, &analysis.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}

	return analyses, nil
}

// GetTotalCount returns the total count of analyses matching the filter.
func (r *AnalysisRepository) GetTotalCount(filter *dto.AnalysisFilters) (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT COUNT(DISTINCT a.id)
		FROM analyses a
		LEFT JOIN detections d ON a.id = d.analysis_id
		WHERE 1=1
	`
	args := []interface{}{}
	query, args = filterClauses(query, args, filter)

	var count int
	if err := r.db.Conn().QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	return count, nil
}

// GetSites returns a list of unique site names.
func (r *AnalysisRepository) GetSites() ([]string, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT DISTINCT site FROM analyses ORDER BY site`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// GetStats returns statistics about stored analyses.
func (r *AnalysisRepository) GetStats() (*models.AnalysisStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &models.AnalysisStats{
		PerSite:        make(map[string]int),
		PerProfile:     make(map[string]int),
		CategoryCounts: make(map[string]int),
	}

	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM analyses`).Scan(&stats.TotalAnalyses); err != nil {
		return nil, err
	}

	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM analyses WHERE compliant = 1`).Scan(&stats.CompliantCount); err != nil {
		return nil, err
	}

	if err := r.db.Conn().QueryRow(`SELECT COALESCE(AVG(score), 0) FROM analyses`).Scan(&stats.AverageScore); err != nil {
		return nil, err
	}

	if err := r.db.Conn().QueryRow(`SELECT COALESCE(SUM(filesize), 0) FROM analyses`).Scan(&stats.TotalSizeBytes); err != nil {
		return nil, err
	}

	siteRows, err := r.db.Conn().Query(`SELECT site, COUNT(*) FROM analyses GROUP BY site`)
	if err != nil {
		return nil, err
	}
	defer siteRows.Close()

	for siteRows.Next() {
		var site string
		var count int
		if err := siteRows.Scan(&site, &count); err != nil {
			return nil, err
		}
		stats.PerSite[site] = count
	}

	profileRows, err := r.db.Conn().Query(`SELECT profile, COUNT(*) FROM analyses GROUP BY profile`)
	if err != nil {
		return nil, err
	}
	defer profileRows.Close()

	for profileRows.Next() {
		var profile string
		var count int
		if err := profileRows.Scan(&profile, &count); err != nil {
			return nil, err
		}
		stats.PerProfile[profile] = count
	}

	categoryRows, err := r.db.Conn().Query(`
		SELECT category, COUNT(*) as cnt
		FROM detections
		GROUP BY category
		ORDER BY cnt DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var category string
		var count int
		if err := categoryRows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.CategoryCounts[category] = count
	}

	return stats, nil
}

// Delete removes an analysis by its ID.
func (r *AnalysisRepository) Delete(id string) error {
	r.db.Lock()
	defer r.db.Unlock()

	// First delete related detections
	if _, err := r.db.Conn().Exec(`DELETE FROM detections WHERE analysis_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete detections: %w", err)
	}

	if _, err := r.db.Conn().Exec(`DELETE FROM analyses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}

// DeleteAll removes all analyses and their detections.
func (r *AnalysisRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM detections`); err != nil {
		return fmt.Errorf("failed to delete detections: %w", err)
	}

	if _, err := r.db.Conn().Exec(`DELETE FROM analyses`); err != nil {
		return fmt.Errorf("failed to delete analyses: %w", err)
	}

	return nil
}
