package categories

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/centsible-dev/centsible/internal/model"
)

// Service provides in-memory lookup over the user's categories.
type Service struct {
	categories []model.Category
	byID       map[int]model.Category
	byName     map[string]int
}

// NewService creates a Service from a slice of categories.
func NewService(cats []model.Category) *Service {
	byID := make(map[int]model.Category, len(cats))
	byName := make(map[string]int, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
		byName[strings.ToLower(c.Name)] = c.ID
	}
	return &Service{categories: cats, byID: byID, byName: byName}
}

// Load reads categories.csv from a profile root and returns a Service.
func Load(profileRoot string) (*Service, error) {
	path := filepath.Join(profileRoot, "categories.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// ByID returns the category map keyed by ID, for the miners.
func (s *Service) ByID() map[int]model.Category {
	return s.byID
}

// Get returns a category by ID.
func (s *Service) Get(id int) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// IDByName resolves a category name case-insensitively.
func (s *Service) IDByName(name string) (int, bool) {
	id, ok := s.byName[strings.ToLower(name)]
	return id, ok
}

// ByType returns all categories of the given type.
func (s *Service) ByType(catType model.CategoryType) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.Type == catType {
			result = append(result, c)
		}
	}
	return result
}

// FirstExpense returns the lowest-ID expense category, the fallback
// suggestion when nothing else matches.
func (s *Service) FirstExpense() (int, bool) {
	expenses := s.ByType(model.CategoryTypeExpense)
	if len(expenses) == 0 {
		return 0, false
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	return expenses[0].ID, true
}

// Save writes the categories to <profileRoot>/categories.csv.
func (s *Service) Save(profileRoot string) error {
	path := filepath.Join(profileRoot, "categories.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.categories); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}
