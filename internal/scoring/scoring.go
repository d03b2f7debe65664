package scoring

import (
	"fmt"
	"sort"
	"time"
)

// Scoring manages the run's score: converting clear streaks into points,
// deriving the level, and keeping the run history.
type Scoring struct {
	// public
	CurrentScore int
	LineCount    int
	// private
	storage ScoreStorage // The interface for loading/saving scores.
	history ScoreHistory
	rewards []int
}

// InitScoring creates and initializes a new Scoring object.
// It loads the run history using the provided storage interface.
func InitScoring(storage ScoreStorage) (*Scoring, error) {
	s := &Scoring{
		rewards: clearRewards(),
		storage: storage,
	}

	// Load all historical entries from storage.
	entries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load score history: %w", err)
	}

	// Sort entries to find the high score.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	s.history.Entries = entries
	s.history.Attempts = len(entries)
	if len(entries) > 0 {
		s.history.HighScoreEntry = &entries[0]
	}

	// Initialize the current run's score entry.
	s.history.CurrentScore = &ScoreHistoryEntry{
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return s, nil
}

// ClearReward maps a clear-streak length to points. Streak lengths beyond
// the table clamp to the last entry.
func (s *Scoring) ClearReward(streak int) int {
	if streak < 1 {
		return 0
	}
	if streak > len(s.rewards) {
		streak = len(s.rewards)
	}
	return s.rewards[streak-1]
}

// ScoreStreaks adds the reward for every clear streak produced by a
// single lock event.
func (s *Scoring) ScoreStreaks(streaks []int) {
	for _, streak := range streaks {
		s.CurrentScore += s.ClearReward(streak)
		s.LineCount += streak
	}

	// Update the current run's entry in the history.
	if s.history.CurrentScore != nil {
		s.history.CurrentScore.Score = s.CurrentScore
		s.history.CurrentScore.Lines = s.LineCount
		s.history.CurrentScore.Level = s.Level()
	}
}

// Level derives the difficulty level from the score. It is never stored
// separately, so it can not drift from the score.
func (s *Scoring) Level() int {
	return s.CurrentScore / 1000
}

// SaveEntries persists the score for the completed run.
// It reads all scores, appends the current run, and writes the list back
// using the storage interface.
func (s *Scoring) SaveEntries() error {
	if s.history.CurrentScore == nil {
		return nil // Nothing to save.
	}

	entries, err := s.storage.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load scores for saving: %w", err)
	}

	entries = append(entries, *s.history.CurrentScore)
	return s.storage.SaveAll(entries)
}

// Accessor methods for score history, delegating to the history object.
func (s *Scoring) GetHighScore() *ScoreHistoryEntry {
	return s.history.GetHighScoreEntry()
}

func (s *Scoring) GetAttempts() int {
	return s.history.Attempts
}

func (s *Scoring) GotHighScore() bool {
	return s.history.GotHighScore()
}

func (s *Scoring) GetNScoreEntries(n int) []ScoreHistoryEntry {
	return s.history.GetNScoreEntries(n)
}

// clearRewards returns the points granted per clear-streak length,
// indexed by length-1.
func clearRewards() []int {
	return []int{100, 250, 500, 1000}
}
