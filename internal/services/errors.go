package services

import "errors"

// Service-level sentinel errors, mapped onto API errors by the transport layer.
var (
	// ErrUnknownDataset indicates an upload or export named a dataset kind
	// that does not exist.
	ErrUnknownDataset = errors.New("unknown dataset kind")

	// ErrEmptyUpload indicates an uploaded file decoded to zero usable rows.
	ErrEmptyUpload = errors.New("uploaded dataset contains no usable rows")

	// ErrUnknownView indicates an export request named a derived view that
	// does not exist.
	ErrUnknownView = errors.New("unknown export view")
)
