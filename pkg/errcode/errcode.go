package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Taxonomy errors
	TaxonomyFileError
	TaxonomyReadError

	// Table errors
	TableOpenError
	TableFormatError
	TableReadError
	TableWriteError
	SpeciesColumnError

	// Annotation errors
	AnnotatePathError
	AnnotateCancelledError
	StatsWriteError
)
