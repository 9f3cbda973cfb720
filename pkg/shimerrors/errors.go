package shimerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrRead indicates an error occurred while reading.
	ErrRead = errors.New("read")

	// ErrReadFile indicates an error occurred while reading a file.
	ErrReadFile = fmt.Errorf("file: %w", ErrRead)

	// ErrFileNotFound indicates a file wasn't found in the searched paths.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidConfig indicates the environment configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrJSONUnmarshal indicates an error occurred while unmarshaling JSON.
	ErrJSONUnmarshal = errors.New("unmarshal JSON")
)
