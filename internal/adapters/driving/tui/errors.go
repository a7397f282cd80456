package tui

import "errors"

// ErrMissingSession is returned when the analysis session is not provided.
var ErrMissingSession = errors.New("tui: session is required")

// ErrMissingFileService is returned when the file service is not provided.
var ErrMissingFileService = errors.New("tui: file service is required")
