//go:build !cgo

package local

import "errors"

// ErrModelNotAvailable is returned when the binary was built without
// CGO support, which the ONNX runtime requires.
var ErrModelNotAvailable = errors.New("local model not available: binary built without CGO support")

func checkModelRuntime() error {
	return ErrModelNotAvailable
}

func newModelEncoder(modelName, cacheDir string, maxLength int) (encoder, error) {
	return nil, ErrModelNotAvailable
}
