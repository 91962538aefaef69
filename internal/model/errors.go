package model

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
	ErrImport     = errors.New("import error")
)
