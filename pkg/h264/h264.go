// Package h264 contains utilities to work with the H264 codec.
package h264

const (
	// MaxNALUSize is the maximum size of a single NALU accepted by this package.
	MaxNALUSize = 3 * 1024 * 1024

	// MaxAccessUnitSize is the maximum size of an assembled access unit.
	MaxAccessUnitSize = 2 * 1024 * 1024
)
