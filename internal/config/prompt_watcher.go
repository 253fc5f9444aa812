package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mockmate/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// PromptWatcher watches custom prompt files for changes and reloads them
type PromptWatcher struct {
	mu sync.RWMutex

	config *Config
	files  []string

	// File metadata
	lastModTime map[string]time.Time

	// Watcher components
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	// Control channels
	stopChan   chan struct{}
	reloadChan chan struct{}

	logger *errors.Logger

	running bool
}

// NewPromptWatcher creates a watcher over every prompt file the config references
func NewPromptWatcher(cfg *Config, debounceDelay time.Duration, logger *errors.Logger) *PromptWatcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &PromptWatcher{
		config:        cfg,
		files:         cfg.promptFilePaths(),
		lastModTime:   make(map[string]time.Time),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		logger:        logger,
	}
}

// promptFilePaths collects every non-empty prompt file path in the config
func (c *Config) promptFilePaths() []string {
	var files []string
	add := func(paths ...string) {
		for _, p := range paths {
			if p != "" {
				files = append(files, p)
			}
		}
	}

	for _, pc := range []*PromptConfig{
		&c.AI.CustomPrompts,
		&c.AI.Analyze.CustomPrompts,
		&c.AI.Question.CustomPrompts,
		&c.AI.Decision.CustomPrompts,
		&c.AI.Feedback.CustomPrompts,
	} {
		add(pc.SystemPrompts.AnalyzeFile, pc.SystemPrompts.QuestionFile,
			pc.SystemPrompts.DecisionFile, pc.SystemPrompts.FeedbackFile)
		add(pc.UserPrompts.AnalyzeFile, pc.UserPrompts.OpeningQuestionFile,
			pc.UserPrompts.NextQuestionFile, pc.UserPrompts.DecisionFile,
			pc.UserPrompts.FeedbackFile, pc.UserPrompts.MatchFeedbackFile)
	}

	return files
}

// Start begins watching prompt files for changes
func (pw *PromptWatcher) Start() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return fmt.Errorf("prompt watcher is already running")
	}
	if len(pw.files) == 0 {
		return nil // Nothing to watch
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	pw.fsWatcher = watcher

	pw.updateModTimes()

	for _, file := range pw.files {
		if err := pw.addFileToWatcher(file); err != nil && pw.logger != nil {
			pw.logger.Warn("Failed to watch prompt file", "file", file, "error", err)
		}
	}

	pw.running = true
	go pw.watchLoop()

	if pw.logger != nil {
		pw.logger.Info("Prompt file watcher started",
			"files", pw.files,
			"debounce_delay", pw.debounceDelay)
	}
	return nil
}

// Stop stops the prompt file watcher
func (pw *PromptWatcher) Stop() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if !pw.running {
		return nil
	}

	close(pw.stopChan)

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	if pw.fsWatcher != nil {
		if err := pw.fsWatcher.Close(); err != nil {
			if pw.logger != nil {
				pw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	pw.running = false

	if pw.logger != nil {
		pw.logger.Info("Prompt file watcher stopped")
	}

	return nil
}

// IsRunning reports whether the watcher is active
func (pw *PromptWatcher) IsRunning() bool {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	return pw.running
}

// GetWatchedFiles returns the prompt files being watched
func (pw *PromptWatcher) GetWatchedFiles() []string {
	pw.mu.RLock()
	defer pw.mu.RUnlock()

	files := make([]string, len(pw.files))
	copy(files, pw.files)
	return files
}

// addFileToWatcher adds a file and its directory to the file system watcher
func (pw *PromptWatcher) addFileToWatcher(file string) error {
	if err := pw.fsWatcher.Add(file); err != nil {
		if os.IsNotExist(err) {
			dir := filepath.Dir(file)
			if err := pw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
		} else {
			return fmt.Errorf("failed to watch file %s: %w", file, err)
		}
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(file)
	if err := pw.fsWatcher.Add(dir); err != nil && pw.logger != nil {
		pw.logger.Warn("Failed to watch directory for atomic writes",
			"directory", dir, "error", err)
	}

	return nil
}

// updateModTimes records the current modification times for all watched files
func (pw *PromptWatcher) updateModTimes() {
	for _, file := range pw.files {
		if stat, err := os.Stat(file); err == nil {
			pw.lastModTime[file] = stat.ModTime()
		}
	}
}

// hasAnyFileChanged checks if any watched file has been modified since last check
func (pw *PromptWatcher) hasAnyFileChanged() bool {
	changed := false
	for _, file := range pw.files {
		stat, err := os.Stat(file)
		if err != nil {
			if os.IsNotExist(err) {
				if _, exists := pw.lastModTime[file]; exists {
					delete(pw.lastModTime, file)
					changed = true
				}
			}
			continue
		}

		lastMod, exists := pw.lastModTime[file]
		if !exists || stat.ModTime().After(lastMod) {
			pw.lastModTime[file] = stat.ModTime()
			changed = true
		}
	}
	return changed
}

// watchLoop is the main event loop for file watching
func (pw *PromptWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-pw.fsWatcher.Events:
			if !ok {
				return
			}
			if pw.shouldProcessEvent(event) {
				pw.scheduleReload()
			}

		case err, ok := <-pw.fsWatcher.Errors:
			if !ok {
				return
			}
			if pw.logger != nil {
				pw.logger.LogError(err, "File watcher error")
			}

		case <-pw.reloadChan:
			// Debounced reload trigger
			if pw.hasAnyFileChanged() {
				pw.reloadPrompts()
			}

		case <-pw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (pw *PromptWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	isWatchedFile := false
	for _, file := range pw.files {
		if event.Name == file || filepath.Base(event.Name) == filepath.Base(file) {
			isWatchedFile = true
			break
		}
	}
	if !isWatchedFile {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (pw *PromptWatcher) scheduleReload() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	pw.debounceTimer = time.AfterFunc(pw.debounceDelay, func() {
		select {
		case pw.reloadChan <- struct{}{}:
		default:
			// Reload already pending
		}
	})
}

// reloadPrompts re-reads the prompt files; on failure the previous
// prompt content stays in effect.
func (pw *PromptWatcher) reloadPrompts() {
	if err := pw.config.loadPromptsFromFiles(); err != nil {
		if pw.logger != nil {
			pw.logger.LogError(err, "Failed to reload prompt files, keeping previous prompts")
		}
		return
	}
	if pw.logger != nil {
		pw.logger.Info("Prompt files reloaded")
	}
}
