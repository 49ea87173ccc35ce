package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/pkg/constraints"
	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
)

// ConstraintsAdvancer moves the constraints document to the next period
type ConstraintsAdvancer interface {
	Advance() (*model.Constraints, error)
}

// ConstraintsView is the constraints document with per-developer problems
type ConstraintsView struct {
	Document   *model.Constraints
	Developers []model.DeveloperSummary

	// Problems lists malformed restriction entries by developer
	Problems map[string][]string
}

// ViewConstraints loads the constraints document and checks every restriction entry
func ViewConstraints(source ConstraintsSource, logger *zap.Logger) (*ConstraintsView, error) {
	logger.Debug("Loading constraints")
	doc, err := source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load constraints: %w", err)
	}

	view := &ConstraintsView{
		Document:   doc,
		Developers: constraints.Summaries(doc),
		Problems:   map[string][]string{},
	}

	for _, name := range constraints.DeveloperNames(doc) {
		for _, entry := range doc.Developers[name].Restrictions {
			if _, err := allocator.ParseSlotKey(entry); err != nil {
				var rerr *allocator.RestrictionError
				reason := err.Error()
				if errors.As(err, &rerr) {
					reason = rerr.Reason
				}
				view.Problems[name] = append(view.Problems[name], fmt.Sprintf("%q: %s", entry, reason))
				logger.Warn("Malformed restriction", zap.String("developer", name), zap.String("entry", entry))
			}
		}
	}

	logger.Debug("Constraints loaded",
		zap.Int("month", doc.Month),
		zap.Int("year", doc.Year),
		zap.Int("developers", len(doc.Developers)),
		zap.Int("developers_with_problems", len(view.Problems)))

	return view, nil
}

// ResetConstraints advances the document to the next month and clears every restriction
func ResetConstraints(store ConstraintsAdvancer, logger *zap.Logger) (*model.Constraints, error) {
	logger.Debug("Resetting constraints")
	doc, err := store.Advance()
	if err != nil {
		return nil, fmt.Errorf("failed to reset constraints: %w", err)
	}

	logger.Info("Constraints reset",
		zap.Int("month", doc.Month),
		zap.Int("year", doc.Year),
		zap.Int("developers", len(doc.Developers)))

	return doc, nil
}
