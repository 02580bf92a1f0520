package model

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// onnxSession runs the model through ONNX Runtime. Tensors are allocated per
// call, so Run is safe for concurrent use.
type onnxSession struct {
	session     *ort.DynamicAdvancedSession
	inputShape  ort.Shape
	outputShape ort.Shape
}

// NewONNXSession initializes the ONNX Runtime environment and opens the model.
func NewONNXSession(modelPath string, meta Metadata, libraryPath string) (Session, error) {
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{meta.InputName}, []string{meta.OutputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &onnxSession{
		session:     session,
		inputShape:  ort.NewShape(meta.InputShape...),
		outputShape: ort.NewShape(meta.OutputShape...),
	}, nil
}

func (s *onnxSession) Run(input []float32) ([]float32, error) {
	inputTensor, err := ort.NewTensor(s.inputShape, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](s.outputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := s.session.Run([]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor}); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	data := outputTensor.GetData()
	output := make([]float32, len(data))
	copy(output, data)

	return output, nil
}

func (s *onnxSession) Destroy() error {
	var err error
	if s.session != nil {
		err = s.session.Destroy()
	}
	if destroyErr := ort.DestroyEnvironment(); err == nil {
		err = destroyErr
	}
	return err
}
