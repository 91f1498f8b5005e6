package services

import (
	"log"
	"strings"
	"wellspring/internal/database"
	"wellspring/internal/models"

	"gorm.io/gorm"
)

type JournalSearchResult struct {
	Entry models.JournalEntry `json:"entry"`
	Score float64             `json:"score"`
}

// JournalSearchService searches a user's journal entries with ranked
// full-text matching and a partial-match fallback for short fragments.
type JournalSearchService struct {
	db *gorm.DB
}

func NewJournalSearchService() *JournalSearchService {
	return &JournalSearchService{
		db: database.GetDB(),
	}
}

// SearchEntries returns the user's journal entries matching the search term,
// best matches first
func (s *JournalSearchService) SearchEntries(username, searchTerm string, limit, offset int) ([]models.JournalEntry, error) {
	cleanTerm := strings.TrimSpace(searchTerm)
	if cleanTerm == "" {
		return []models.JournalEntry{}, nil
	}

	var results []JournalSearchResult

	// Strategy 1: Full-Text Search with ranking (highest priority)
	ftsResults, err := s.fullTextSearch(username, cleanTerm, limit)
	if err != nil {
		log.Printf("Journal FTS search error: %v", err)
	} else {
		results = append(results, ftsResults...)
	}

	// Strategy 2: Partial matching fallback (lower priority)
	partialResults, err := s.partialSearch(username, cleanTerm)
	if err != nil {
		log.Printf("Journal partial search error: %v", err)
	} else {
		results = append(results, partialResults...)
	}

	combined := s.combineAndRankResults(results)

	// Apply pagination
	start := offset
	end := offset + limit
	if start >= len(combined) {
		return []models.JournalEntry{}, nil
	}
	if end > len(combined) {
		end = len(combined)
	}

	var entries []models.JournalEntry
	for i := start; i < end; i++ {
		entries = append(entries, combined[i].Entry)
	}

	return entries, nil
}

// fullTextSearch performs PostgreSQL full-text search over entry content
func (s *JournalSearchService) fullTextSearch(username, searchTerm string, limit int) ([]JournalSearchResult, error) {
	tsqueryTerm := s.prepareSearchQuery(searchTerm)
	if tsqueryTerm == "" {
		return []JournalSearchResult{}, nil
	}

	type ftsRow struct {
		models.JournalEntry
		FtsRank float64 `gorm:"column:fts_rank"`
	}

	var rows []ftsRow
	err := s.db.Raw(`
		SELECT *,
		       ts_rank_cd(to_tsvector('english', content), to_tsquery('english', ?), 1) AS fts_rank
		FROM journal_entry
		WHERE username = ?
		  AND to_tsvector('english', content) @@ to_tsquery('english', ?)
		ORDER BY fts_rank DESC
		LIMIT ?`,
		tsqueryTerm, username, tsqueryTerm, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]JournalSearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, JournalSearchResult{
			Entry: row.JournalEntry,
			Score: row.FtsRank * 100, // High priority for FTS
		})
	}

	return results, nil
}

// partialSearch performs case-insensitive substring matching as fallback
func (s *JournalSearchService) partialSearch(username, searchTerm string) ([]JournalSearchResult, error) {
	searchPattern := "%" + strings.ToLower(searchTerm) + "%"

	type partialRow struct {
		models.JournalEntry
		PartialScore float64 `gorm:"column:partial_score"`
	}

	var rows []partialRow
	err := s.db.Raw(`
		SELECT *,
		       CASE
		           WHEN LOWER(content) LIKE ? THEN 2
		           WHEN LOWER(mood_label) LIKE ? THEN 1
		           ELSE 0.5
		       END AS partial_score
		FROM journal_entry
		WHERE username = ?
		  AND (LOWER(content) LIKE ? OR LOWER(mood_label) LIKE ?)
		ORDER BY partial_score DESC, entry_date DESC
		LIMIT 20`,
		searchPattern, searchPattern, username, searchPattern, searchPattern).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]JournalSearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, JournalSearchResult{
			Entry: row.JournalEntry,
			Score: row.PartialScore * 10, // Low priority for partial
		})
	}

	return results, nil
}

// prepareSearchQuery converts user input to tsquery format
func (s *JournalSearchService) prepareSearchQuery(searchTerm string) string {
	terms := strings.Fields(strings.ToLower(searchTerm))
	if len(terms) == 0 {
		return ""
	}

	if len(terms) == 1 {
		return terms[0] + ":*" // Prefix matching
	}

	// Multiple words - OR logic for broader, more user-friendly results
	processedTerms := make([]string, len(terms))
	for i, term := range terms {
		processedTerms[i] = term + ":*"
	}

	return strings.Join(processedTerms, " | ")
}

// combineAndRankResults merges results from both strategies and removes duplicates
func (s *JournalSearchService) combineAndRankResults(results []JournalSearchResult) []JournalSearchResult {
	entryMap := make(map[uint]JournalSearchResult)

	for _, result := range results {
		existing, exists := entryMap[result.Entry.ID]
		if !exists || result.Score > existing.Score {
			entryMap[result.Entry.ID] = result
		}
	}

	var finalResults []JournalSearchResult
	for _, result := range entryMap {
		finalResults = append(finalResults, result)
	}

	// Sort by score descending
	for i := 0; i < len(finalResults)-1; i++ {
		for j := i + 1; j < len(finalResults); j++ {
			if finalResults[i].Score < finalResults[j].Score {
				finalResults[i], finalResults[j] = finalResults[j], finalResults[i]
			}
		}
	}

	return finalResults
}
