package model

import (
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	StateUnloaded State = iota
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "unloaded"
}

// Holder owns the process-wide classifier. It starts unloaded and moves to
// loaded at most once; a failed load is kept so it can be reported.
type Holder struct {
	mu         sync.RWMutex
	state      State
	classifier *Classifier
	loadErr    error
}

func NewHolder() *Holder {
	return &Holder{state: StateUnloaded}
}

// Load opens the model described by opts. Failures are logged and leave the
// holder unloaded; they never stop the process.
func (h *Holder) Load(opts Options, logger *zap.Logger) State {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == StateLoaded {
		return h.state
	}

	logger.Info("Loading model", zap.String("path", opts.ModelPath))

	classifier, err := NewClassifier(opts)
	if err != nil {
		logger.Error("Failed to load model", zap.String("path", opts.ModelPath), zap.Error(err))
		h.loadErr = err
		return h.state
	}

	h.classifier = classifier
	h.state = StateLoaded
	h.loadErr = nil

	meta := classifier.Metadata
	logger.Info("Model loaded successfully",
		zap.String("input", meta.InputName),
		zap.Int64s("input_shape", meta.InputShape),
		zap.String("output", meta.OutputName),
		zap.Int64s("output_shape", meta.OutputShape),
		zap.Int("image_size", meta.ImageSize),
		zap.Int("classes", len(meta.Classes)),
		zap.Bool("invert", classifier.preprocess.Invert))

	return h.state
}

// Classifier returns the loaded classifier or ErrModelNotLoaded.
func (h *Holder) Classifier() (*Classifier, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.state != StateLoaded {
		return nil, ErrModelNotLoaded
	}
	return h.classifier, nil
}

func (h *Holder) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.state
}

func (h *Holder) LoadError() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.loadErr
}

// Close releases the model session and returns the holder to unloaded.
func (h *Holder) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateLoaded {
		return nil
	}

	err := h.classifier.Close()
	h.classifier = nil
	h.state = StateUnloaded
	return err
}
