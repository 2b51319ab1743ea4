package entity

import "errors"

// Domain errors shared by stores and usecases.
var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateID           = errors.New("record with the same id already exists")
	ErrValidation            = errors.New("validation failed")
	ErrInvalidID             = errors.New("invalid record id")
	ErrInvalidOwner          = errors.New("invalid owner id")
	ErrInvalidTheme          = errors.New("invalid theme")
	ErrInvalidConfidence     = errors.New("confidence level must be between 1 and 5")
	ErrInvalidGrade          = errors.New("invalid grade")
	ErrReviewCountRegression = errors.New("review count cannot decrease")
	ErrCourseArchived        = errors.New("course is archived")
)
