// Package local resolves local paths into input files and watches a drop folder.
package local
