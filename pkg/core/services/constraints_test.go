package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/pkg/constraints"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
)

func TestViewConstraints(t *testing.T) {
	doc := &model.Constraints{
		Month: 4,
		Year:  2026,
		Developers: map[string]*model.DeveloperConstraints{
			"Omer": {Email: "omer@example.com", Restrictions: []string{"01/04 Day", "1/4 Night", "02/04 Evening"}},
			"Amit": {Restrictions: []string{"03/04 Night"}},
		},
	}

	view, err := ViewConstraints(&mockConstraints{doc: doc}, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, view.Developers, 2)
	assert.Equal(t, "Amit", view.Developers[0].Name)
	assert.Equal(t, 3, view.Developers[1].RestrictionCount)

	assert.NotContains(t, view.Problems, "Amit")
	require.Len(t, view.Problems["Omer"], 2)
	assert.Contains(t, view.Problems["Omer"][0], `"1/4 Night"`)
	assert.Contains(t, view.Problems["Omer"][1], "Day or Night")
}

func TestViewConstraints_LoadError(t *testing.T) {
	_, err := ViewConstraints(&mockConstraints{err: errBoom}, zap.NewNop())
	assert.ErrorIs(t, err, errBoom)
}

func TestResetConstraints(t *testing.T) {
	store := constraints.NewStore(filepath.Join(t.TempDir(), "constraints.json"))
	_, err := store.Init(map[string]string{"Omer": "", "Amit": ""}, time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = store.AddRestriction("Omer", "24/12 Night")
	require.NoError(t, err)

	doc, err := ResetConstraints(store, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Month)
	assert.Equal(t, 2027, doc.Year)
	assert.Empty(t, doc.Developers["Omer"].Restrictions)
}

func TestBuildSummaryEmail(t *testing.T) {
	result, err := GenerateSchedule(t.Context(), &mockConstraints{doc: &model.Constraints{
		Month: 2, Year: 2026,
		Developers: map[string]*model.DeveloperConstraints{"Solo": {}},
	}}, GenerateDeps{}, testConfig(t), zap.NewNop(), GenerateOptions{DayLimit: 1, Seed: seed(1)})
	require.NoError(t, err)

	subject, body := BuildSummaryEmail(result)

	assert.Equal(t, "On-call schedule for February 2026", subject)
	assert.Contains(t, body, "1 slot(s) need manual cover")
	assert.Contains(t, body, "Sunday 01/02 Night (night)")
	assert.Contains(t, body, "Solo  0 / 0 / 1")
	assert.Contains(t, body, "seed 1.")
}
