// Package file stores export artifacts on the local filesystem.
package file
