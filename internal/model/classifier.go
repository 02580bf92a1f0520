package model

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Brownie44l1/doodle-api/internal/preprocess"
)

// Session is a loaded model that maps one flattened input tensor to raw
// class scores.
type Session interface {
	Run(input []float32) ([]float32, error)
	Destroy() error
}

// SessionFactory opens a Session for a model file.
type SessionFactory func(modelPath string, meta Metadata, libraryPath string) (Session, error)

// Recorder receives stage timings. metrics.Collector implements it.
type Recorder interface {
	ObservePreprocess(d time.Duration)
	ObserveInference(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObservePreprocess(time.Duration) {}
func (nopRecorder) ObserveInference(time.Duration)  {}

type Options struct {
	ModelPath    string
	MetadataPath string
	LabelsPath   string
	LibraryPath  string
	TopK         int
	Invert       bool
	Recorder     Recorder
	NewSession   SessionFactory
}

type Classifier struct {
	session    Session
	Metadata   Metadata
	topK       int
	preprocess preprocess.Options
	recorder   Recorder
}

// NewClassifier resolves metadata and labels and opens the model session.
func NewClassifier(opts Options) (*Classifier, error) {
	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %w", err)
	}

	meta, err := LoadMetadata(opts.MetadataPath)
	if err != nil {
		return nil, err
	}
	if opts.LabelsPath != "" {
		labels, err := LoadLabels(opts.LabelsPath)
		if err != nil {
			return nil, err
		}
		meta.Classes = labels
	}
	meta.resolve()
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model metadata: %w", err)
	}

	newSession := opts.NewSession
	if newSession == nil {
		newSession = NewONNXSession
	}
	session, err := newSession(opts.ModelPath, meta, opts.LibraryPath)
	if err != nil {
		return nil, err
	}

	return newClassifier(session, meta, opts), nil
}

func newClassifier(session Session, meta Metadata, opts Options) *Classifier {
	recorder := opts.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	topK := opts.TopK
	if topK < 1 {
		topK = 5
	}

	return &Classifier{
		session:  session,
		Metadata: meta,
		topK:     topK,
		preprocess: preprocess.Options{
			Size:   meta.ImageSize,
			Invert: opts.Invert || meta.Invert,
		},
		recorder: recorder,
	}
}

// Classify preprocesses raw image bytes and ranks the model's predictions.
func (c *Classifier) Classify(ctx context.Context, data []byte) ([]Prediction, error) {
	start := time.Now()
	input, err := preprocess.FromBytes(data, c.preprocess)
	if err != nil {
		return nil, &ProcessingError{Stage: "preprocess", Err: err}
	}
	c.recorder.ObservePreprocess(time.Since(start))

	return c.Predict(ctx, input)
}

// Predict ranks the model's predictions for an already preprocessed tensor.
func (c *Classifier) Predict(ctx context.Context, input []float32) ([]Prediction, error) {
	if want := c.Metadata.InputSize(); len(input) != want {
		return nil, &InputError{Reason: fmt.Sprintf("Expected %d values, got %d", want, len(input))}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	scores, err := c.session.Run(input)
	if err != nil {
		return nil, &ProcessingError{Stage: "inference", Err: err}
	}
	c.recorder.ObserveInference(time.Since(start))

	if len(scores) != len(c.Metadata.Classes) {
		return nil, &ProcessingError{
			Stage: "inference",
			Err:   fmt.Errorf("model returned %d scores for %d classes", len(scores), len(c.Metadata.Classes)),
		}
	}

	return TopK(Softmax(scores), c.Metadata.Classes, c.topK), nil
}

func (c *Classifier) Close() error {
	return c.session.Destroy()
}
