// Package httpapi implements driven.AnalysisClient over HTTP.
//
// One Process call is one POST of a multipart/form-data body with a
// "files" part per input file. The body is streamed so large ZIP batches
// are never buffered in memory.
package httpapi
