package download

import (
	"fmt"

	"github.com/cperrin88/relsync/pkg/errors"
)

// ByteRange is an inclusive [Start, End] offset interval within a file.
type ByteRange struct {
	Start uint64
	End   uint64
}

// Length returns the number of bytes covered by the range.
func (r ByteRange) Length() uint64 {
	return r.End - r.Start + 1
}

// String renders the range in HTTP Range header notation.
func (r ByteRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// PlanRanges partitions [0, totalSize) into workerCount contiguous,
// non-overlapping ranges. Range i starts at i*floor(totalSize/workerCount)
// and the last range absorbs the remainder. The partition is
// deterministic. Returns errors.ErrInvalidSize when totalSize is zero: an
// unknown- or zero-length resource cannot be safely range-partitioned.
//
// workerCount is clamped to [1, totalSize] so every produced range covers
// at least one byte.
func PlanRanges(totalSize uint64, workerCount uint32) ([]ByteRange, error) {
	if totalSize == 0 {
		return nil, errors.ErrInvalidSize
	}
	workers := uint64(workerCount)
	if workers < 1 {
		workers = 1
	}
	if workers > totalSize {
		workers = totalSize
	}

	rangeSize := totalSize / workers
	ranges := make([]ByteRange, 0, workers)
	for i := uint64(0); i < workers; i++ {
		r := ByteRange{
			Start: i * rangeSize,
			End:   (i+1)*rangeSize - 1,
		}
		if i == workers-1 {
			r.End = totalSize - 1
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
