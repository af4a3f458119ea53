package domain

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict")
	ErrDuplicateDate  = errors.New("sleep record already exists for this date")
	ErrInvalidInput   = errors.New("invalid input")
)
