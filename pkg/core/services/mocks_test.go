package services

import (
	"context"
	"errors"

	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
	"github.com/jakechorley/oncall-scheduler/pkg/db"
	"github.com/jakechorley/oncall-scheduler/pkg/export"
)

type mockConstraints struct {
	doc *model.Constraints
	err error
}

func (m *mockConstraints) Load() (*model.Constraints, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

type mockRunStore struct {
	runs        []db.Run
	assignments map[string][]db.Assignment
	tallies     map[string][]db.Tally
	insertErr   error
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment, tallies []db.Tally) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if m.assignments == nil {
		m.assignments = map[string][]db.Assignment{}
		m.tallies = map[string][]db.Tally{}
	}
	m.runs = append(m.runs, *run)
	m.assignments[run.ID] = assignments
	m.tallies[run.ID] = tallies
	return nil
}

func (m *mockRunStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	return m.runs, nil
}

func (m *mockRunStore) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	return m.assignments[runID], nil
}

func (m *mockRunStore) GetTallies(ctx context.Context, runID string) ([]db.Tally, error) {
	return m.tallies[runID], nil
}

type mockPublisher struct {
	calls         int
	spreadsheetID string
	worksheet     string
	schedule      export.Schedule
	err           error
}

func (m *mockPublisher) AppendSchedule(ctx context.Context, spreadsheetID, worksheet string, schedule export.Schedule, palette export.Palette) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	m.spreadsheetID = spreadsheetID
	m.worksheet = worksheet
	m.schedule = schedule
	return 1, nil
}

type sentEmail struct {
	to      []string
	subject string
	body    string
}

type mockNotifier struct {
	calls   int
	to      []string
	subject string
	body    string
	sent    []sentEmail
	err     error
}

func (m *mockNotifier) SendEmail(ctx context.Context, to []string, subject, body string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.to = to
	m.subject = subject
	m.body = body
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

type mockDailyConstraints struct {
	mockConstraints
	advanced int
}

func (m *mockDailyConstraints) Advance() (*model.Constraints, error) {
	m.advanced++
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

var errBoom = errors.New("boom")
