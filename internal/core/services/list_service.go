package services

import (
	"sort"
	"strings"

	"github.com/posa-app/posa-cli/internal/core/domain"
)

// ListService handles sorting and searching the cat collection for the
// presentation layer.
type ListService struct {
	cats *CatService
}

// NewListService creates a new list service
func NewListService(cats *CatService) *ListService {
	return &ListService{cats: cats}
}

// ListRequest represents a request to list cats
type ListRequest struct {
	SortBy  string // "name", "date", "encounters" (default: name)
	Reverse bool
}

// ListResponse represents the response from listing cats
type ListResponse struct {
	Cats  []domain.Cat
	Total int
}

// Execute lists cats with sorting
func (s *ListService) Execute(req ListRequest) *ListResponse {
	cats := s.cats.Cats()
	sortCats(cats, req.SortBy, req.Reverse)
	return &ListResponse{Cats: cats, Total: len(cats)}
}

// Search returns the cats matching the query, best match first. An
// empty query returns the whole collection.
func (s *ListService) Search(query string) *ListResponse {
	cats := s.cats.Cats()

	query = strings.TrimSpace(query)
	if query == "" {
		sortCats(cats, "name", false)
		return &ListResponse{Cats: cats, Total: len(cats)}
	}

	type scored struct {
		cat   domain.Cat
		score int
	}
	var matches []scored

	for _, cat := range cats {
		// Name matches rank above descriptive-field matches.
		if score := matchScore(cat.Name, query); score > 0 {
			matches = append(matches, scored{cat, score + 1000})
			continue
		}
		if score := matchScore(cat.FurColor, query); score > 0 {
			matches = append(matches, scored{cat, score + 200})
			continue
		}
		if score := matchScore(cat.Behavior, query); score > 0 {
			matches = append(matches, scored{cat, score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.Cat, len(matches))
	for i, m := range matches {
		result[i] = m.cat
	}
	return &ListResponse{Cats: result, Total: len(result)}
}

func sortCats(cats []domain.Cat, sortBy string, reverse bool) {
	sort.SliceStable(cats, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "date":
			// Ids are millisecond timestamps, so creation order is id order.
			less = cats[i].ID < cats[j].ID
		case "encounters":
			less = len(cats[i].Encounters) < len(cats[j].Encounters)
		default: // "name"
			less = strings.ToLower(cats[i].Name) < strings.ToLower(cats[j].Name)
		}
		if reverse {
			return !less
		}
		return less
	})
}

// matchScore scores query against text: exact beats prefix beats
// substring; no match scores 0.
func matchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	switch {
	case textLower == queryLower:
		return 9000
	case strings.HasPrefix(textLower, queryLower):
		return 7000
	case strings.Contains(textLower, queryLower):
		return 5000
	}
	return 0
}
