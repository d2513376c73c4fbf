package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReplayStep is one applied action and the checksum of the state after it.
type ReplayStep struct {
	Action   Action
	Checksum string
}

// Replay is a recorded game: the setup needed to rebuild it and every
// applied action. Rejected actions are not recorded.
type Replay struct {
	GameID   string
	GameType string
	Players  int
	Seed     int64
	// Initial is the checksum of the state after setup.
	Initial      string
	Steps        []ReplayStep
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates a new replay instance
func NewReplay(gameID, gameType string, players int, seed int64) *Replay {
	return &Replay{
		GameID:   gameID,
		GameType: gameType,
		Players:  players,
		Seed:     seed,
		Steps:    make([]ReplayStep, 0),
	}
}

// RecordStep appends an applied action
func (r *Replay) RecordStep(action Action, checksum string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Steps = append(r.Steps, ReplayStep{Action: action, Checksum: checksum})
}

// Start resets the replay to the beginning
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the step at the cursor and advances it
func (r *Replay) Next() *ReplayStep {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.Steps) {
		step := r.Steps[r.CurrentIndex]
		r.CurrentIndex++
		return &step
	}
	return nil
}

// Previous moves the cursor back and returns the step there
func (r *Replay) Previous() *ReplayStep {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		step := r.Steps[r.CurrentIndex]
		return &step
	}
	return nil
}

// Skip moves the cursor by count steps, clamped to the recording
func (r *Replay) Skip(count int) *ReplayStep {
	r.mu.Lock()
	defer r.mu.Unlock()

	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.Steps) {
		newIndex = len(r.Steps) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	if r.CurrentIndex < len(r.Steps) {
		step := r.Steps[r.CurrentIndex]
		return &step
	}
	return nil
}

// Size returns the number of recorded steps
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.Steps)
}

// GetStepAt returns the step at a specific index
func (r *Replay) GetStepAt(index int) *ReplayStep {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.Steps) {
		step := r.Steps[index]
		return &step
	}
	return nil
}

// SaveToFile saves the replay to a gzipped file named after the game
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", r.GameID))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := gob.NewEncoder(gzipWriter)

	metadata := replayMetadata{
		GameID:    r.GameID,
		GameType:  r.GameType,
		Players:   r.Players,
		Seed:      r.Seed,
		Initial:   r.Initial,
		Timestamp: time.Now(),
		Version:   1,
		StepCount: len(r.Steps),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := encoder.Encode(r.Steps); err != nil {
		return fmt.Errorf("failed to encode steps: %w", err)
	}
	return nil
}

// LoadReplayFromFile loads a replay saved by SaveToFile
func LoadReplayFromFile(directory, gameID string) (*Replay, error) {
	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", gameID))

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	if metadata.Version != 1 {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	replay := NewReplay(metadata.GameID, metadata.GameType, metadata.Players, metadata.Seed)
	replay.Initial = metadata.Initial

	if err := decoder.Decode(&replay.Steps); err != nil {
		return nil, fmt.Errorf("failed to decode steps: %w", err)
	}
	if len(replay.Steps) != metadata.StepCount {
		return nil, fmt.Errorf("replay has %d steps, header says %d", len(replay.Steps), metadata.StepCount)
	}
	return replay, nil
}

// replayMetadata contains information about a saved replay
type replayMetadata struct {
	GameID    string
	GameType  string
	Players   int
	Seed      int64
	Initial   string
	Timestamp time.Time
	Version   int
	StepCount int
}

type recording struct {
	replay *Replay
	active bool
}

// ReplayRecorder keeps the replays of running games and writes them to
// saveDir when asked.
type ReplayRecorder struct {
	logger     *zap.Logger
	saveDir    string
	mu         sync.RWMutex
	recordings map[string]*recording // gameID -> recording
}

// NewReplayRecorder creates a recorder that saves into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:     logger,
		saveDir:    saveDir,
		recordings: make(map[string]*recording),
	}
}

// StartRecording begins recording replay under its game ID.
func (rr *ReplayRecorder) StartRecording(replay *Replay) {
	rr.mu.Lock()
	rr.recordings[replay.GameID] = &recording{replay: replay, active: true}
	rr.mu.Unlock()

	rr.logger.Info("started replay recording",
		zap.String("game_id", replay.GameID),
		zap.String("game_type", replay.GameType),
		zap.Int64("seed", replay.Seed),
	)
}

// StopRecording freezes a game's replay. It stays in memory until saved
// or cleared.
func (rr *ReplayRecorder) StopRecording(gameID string) {
	rr.mu.Lock()
	if rec, ok := rr.recordings[gameID]; ok {
		rec.active = false
	}
	rr.mu.Unlock()

	rr.logger.Info("stopped replay recording", zap.String("game_id", gameID))
}

// RecordStep appends an applied action to an active recording.
func (rr *ReplayRecorder) RecordStep(gameID string, action Action, checksum string) {
	rr.mu.RLock()
	rec, ok := rr.recordings[gameID]
	active := ok && rec.active
	rr.mu.RUnlock()
	if !active {
		return
	}

	rec.replay.RecordStep(action, checksum)
	rr.logger.Debug("recorded replay step",
		zap.String("game_id", gameID),
		zap.String("move", action.Move),
		zap.Int("step_count", rec.replay.Size()),
	)
}

// GetReplay returns the replay of a game, recorded or stopped.
func (rr *ReplayRecorder) GetReplay(gameID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	rec, ok := rr.recordings[gameID]
	if !ok {
		return nil, false
	}
	return rec.replay, true
}

// SaveReplay writes a game's replay to disk and forgets it.
func (rr *ReplayRecorder) SaveReplay(gameID string) error {
	rr.mu.Lock()
	rec, ok := rr.recordings[gameID]
	delete(rr.recordings, gameID)
	rr.mu.Unlock()

	if !ok {
		return fmt.Errorf("no replay found for game %s", gameID)
	}
	if err := rec.replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}

	rr.logger.Info("saved replay to disk",
		zap.String("game_id", gameID),
		zap.Int("step_count", rec.replay.Size()),
		zap.String("directory", rr.saveDir),
	)
	return nil
}

// LoadReplay reads a saved replay from the recorder's directory.
func (rr *ReplayRecorder) LoadReplay(gameID string) (*Replay, error) {
	replay, err := LoadReplayFromFile(rr.saveDir, gameID)
	if err != nil {
		return nil, err
	}

	rr.logger.Info("loaded replay from disk",
		zap.String("game_id", gameID),
		zap.Int("step_count", replay.Size()),
	)
	return replay, nil
}

// ClearReplay drops a replay without saving it.
func (rr *ReplayRecorder) ClearReplay(gameID string) {
	rr.mu.Lock()
	delete(rr.recordings, gameID)
	rr.mu.Unlock()

	rr.logger.Debug("cleared replay from memory", zap.String("game_id", gameID))
}

// IsRecording reports whether a game's replay is still being recorded.
func (rr *ReplayRecorder) IsRecording(gameID string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	rec, ok := rr.recordings[gameID]
	return ok && rec.active
}
