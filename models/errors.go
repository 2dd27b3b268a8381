package models

import "errors"

var (
	// ErrColumnNotFound is returned when a requested region has no column in the table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrRowCountMismatch is returned when a column length differs from the Date column.
	ErrRowCountMismatch = errors.New("row count does not match date column")

	// ErrEmptyTable is returned when an operation needs at least one row.
	ErrEmptyTable = errors.New("table has no rows")
)
