package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"legalbridge-backend/models"
	"legalbridge-backend/repository"
)

// FilterAll matches every region or role
const FilterAll = "all"

// ContributorFilter holds the directory page's three filters
type ContributorFilter struct {
	Query  string
	Region string
	Role   string
}

// FilterContributors keeps the contributors matching all three filters, in
// their original order.
func FilterContributors(list []models.Contributor, f ContributorFilter) []models.Contributor {
	query := strings.ToLower(f.Query)
	out := make([]models.Contributor, 0, len(list))
	for _, c := range list {
		if !matchesQuery(c, query) {
			continue
		}
		if f.Region != "" && f.Region != FilterAll && c.Region != f.Region {
			continue
		}
		if f.Role != "" && f.Role != FilterAll && string(c.Role) != f.Role {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesQuery(c models.Contributor, query string) bool {
	if query == "" || strings.Contains(strings.ToLower(c.Name), query) {
		return true
	}
	for _, interest := range c.Interests {
		if strings.Contains(strings.ToLower(interest), query) {
			return true
		}
	}
	return false
}

// GroupByRole buckets contributors for the directory tabs
func GroupByRole(list []models.Contributor) map[models.ContributorRole][]models.Contributor {
	groups := make(map[models.ContributorRole][]models.Contributor, len(models.ContributorRoles))
	for _, role := range models.ContributorRoles {
		groups[role] = []models.Contributor{}
	}
	for _, c := range list {
		groups[c.Role] = append(groups[c.Role], c)
	}
	return groups
}

// DirectoryService serves the contributor directory
type DirectoryService struct {
	repo repository.ContributorRepository
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(repo repository.ContributorRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

// ContributorCard is a contributor with its role and availability badges resolved
type ContributorCard struct {
	models.Contributor
	RoleBadge         models.Badge `json:"role_badge"`
	AvailabilityBadge models.Badge `json:"availability_badge"`
	CanConnect        bool         `json:"can_connect"`
}

// NewContributorCard resolves c's display badges
func NewContributorCard(c models.Contributor) ContributorCard {
	return ContributorCard{
		Contributor:       c,
		RoleBadge:         c.Role.Badge(),
		AvailabilityBadge: c.Availability.Badge(),
		CanConnect:        c.CanConnect(),
	}
}

// SearchResult is the filtered directory plus the per-role tab counts
type SearchResult struct {
	Total        int                            `json:"total"`
	Summary      string                         `json:"summary"`
	Contributors []ContributorCard              `json:"contributors"`
	RoleCounts   map[models.ContributorRole]int `json:"role_counts"`
}

// Search filters the directory
func (s *DirectoryService) Search(ctx context.Context, f ContributorFilter) (*SearchResult, error) {
	if f.Role != "" && f.Role != FilterAll && !models.ContributorRole(f.Role).Valid() {
		verr := NewValidationError()
		verr.Set("role", "Role must be all, intern, paralegal or lawyer")
		return nil, verr
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := FilterContributors(all, f)
	cards := make([]ContributorCard, 0, len(matched))
	for _, c := range matched {
		cards = append(cards, NewContributorCard(c))
	}
	counts := make(map[models.ContributorRole]int)
	for role, group := range GroupByRole(matched) {
		counts[role] = len(group)
	}

	return &SearchResult{
		Total:        len(matched),
		Summary:      fmt.Sprintf("%d contributors found", len(matched)),
		Contributors: cards,
		RoleCounts:   counts,
	}, nil
}

// Get returns one contributor
func (s *DirectoryService) Get(ctx context.Context, id string) (*models.Contributor, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrContributorNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
