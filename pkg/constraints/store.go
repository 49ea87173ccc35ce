package constraints

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
)

var (
	ErrDeveloperNotFound    = errors.New("developer not found")
	ErrDuplicateRestriction = errors.New("restriction already exists")
	ErrInvalidIndex         = errors.New("invalid restriction index")
	ErrInvalidMonth         = errors.New("invalid month (1-12)")
)

const filePerms = 0644

// Store reads and writes the constraints document on disk.
// Writes go to a temp file which is renamed over the original.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewStore creates a store for the document at path
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the document location
func (s *Store) Path() string {
	return s.path
}

// Load reads the document
func (s *Store) Load() (*model.Constraints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Init creates a document for the month after now when none exists yet.
// developers maps names to emails. Returns true if a file was written.
func (s *Store) Init(developers map[string]string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat constraints file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create constraints directory: %w", err)
	}

	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	doc := &model.Constraints{
		Month:      int(next.Month()),
		Year:       next.Year(),
		Developers: make(map[string]*model.DeveloperConstraints, len(developers)),
	}
	for name, email := range developers {
		doc.Developers[name] = &model.DeveloperConstraints{Email: email, Restrictions: []string{}}
	}

	if err := s.save(doc); err != nil {
		return false, err
	}
	return true, nil
}

// Update loads the document, applies fn and saves the result
func (s *Store) Update(fn func(doc *model.Constraints) error) (*model.Constraints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AddRestriction appends a "DD/MM Day|Night" entry to a developer's list
func (s *Store) AddRestriction(developer, entry string) ([]string, error) {
	if _, err := allocator.ParseSlotKey(entry); err != nil {
		return nil, err
	}

	var restrictions []string
	_, err := s.Update(func(doc *model.Constraints) error {
		dev, ok := doc.Developers[developer]
		if !ok {
			return fmt.Errorf("%w: %s", ErrDeveloperNotFound, developer)
		}
		if slices.Contains(dev.Restrictions, entry) {
			return fmt.Errorf("%w: %s", ErrDuplicateRestriction, entry)
		}
		dev.Restrictions = append(dev.Restrictions, entry)
		restrictions = slices.Clone(dev.Restrictions)
		return nil
	})
	return restrictions, err
}

// RemoveRestriction deletes the entry at index from a developer's list
func (s *Store) RemoveRestriction(developer string, index int) ([]string, error) {
	var restrictions []string
	_, err := s.Update(func(doc *model.Constraints) error {
		dev, ok := doc.Developers[developer]
		if !ok {
			return fmt.Errorf("%w: %s", ErrDeveloperNotFound, developer)
		}
		if index < 0 || index >= len(dev.Restrictions) {
			return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
		}
		dev.Restrictions = slices.Delete(dev.Restrictions, index, index+1)
		restrictions = slices.Clone(dev.Restrictions)
		return nil
	})
	return restrictions, err
}

// ClearRestrictions empties a developer's list
func (s *Store) ClearRestrictions(developer string) error {
	_, err := s.Update(func(doc *model.Constraints) error {
		dev, ok := doc.Developers[developer]
		if !ok {
			return fmt.Errorf("%w: %s", ErrDeveloperNotFound, developer)
		}
		dev.Restrictions = []string{}
		return nil
	})
	return err
}

// SetPeriod changes the target month and/or year. Zero values leave the field unchanged.
func (s *Store) SetPeriod(month, year int) (*model.Constraints, error) {
	if month != 0 && (month < 1 || month > 12) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return s.Update(func(doc *model.Constraints) error {
		if month != 0 {
			doc.Month = month
		}
		if year != 0 {
			doc.Year = year
		}
		return nil
	})
}

// Advance moves the document to the following month and clears every restriction
func (s *Store) Advance() (*model.Constraints, error) {
	return s.Update(func(doc *model.Constraints) error {
		if doc.Month == 12 {
			doc.Month = 1
			doc.Year++
		} else {
			doc.Month++
		}
		for _, dev := range doc.Developers {
			dev.Restrictions = []string{}
		}
		return nil
	})
}

func (s *Store) load() (*model.Constraints, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read constraints file: %w", err)
	}

	var doc model.Constraints
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse constraints file: %w", err)
	}
	if doc.Developers == nil {
		doc.Developers = map[string]*model.DeveloperConstraints{}
	}
	for name, dev := range doc.Developers {
		if dev == nil {
			doc.Developers[name] = &model.DeveloperConstraints{Restrictions: []string{}}
		}
	}
	return &doc, nil
}

func (s *Store) save(doc *model.Constraints) error {
	doc.LastUpdated = s.now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal constraints: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerms); err != nil {
		return fmt.Errorf("failed to write constraints file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace constraints file: %w", err)
	}
	return nil
}
