package mediagate

import (
	"regexp"
	"strconv"
)

// RangeSpec describes a single byte range. Length == 0 means "through the
// end of the object"; a client can never request a zero-length range since
// an explicit end must be >= start.
type RangeSpec struct {
	Offset int64
	Length int64
}

// Only single byte ranges are supported. Suffix-length ranges (bytes=-500)
// and multi-range lists are rejected, which for media playback is enough:
// video seeking issues single ranges.
var rangePattern = regexp.MustCompile(`^bytes=(\d+)-(\d+)?$`)

// ParseRange parses an HTTP Range header into a RangeSpec. A nil result is
// not an error: it means "serve the whole object with status 200", matching
// standard HTTP leniency toward absent or malformed Range headers.
func ParseRange(header string) *RangeSpec {
	if header == "" {
		return nil
	}

	m := rangePattern.FindStringSubmatch(header)
	if m == nil {
		return nil
	}

	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || start < 0 {
		return nil
	}

	if m[2] == "" {
		return &RangeSpec{Offset: start}
	}

	end, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || end < start {
		return nil
	}

	return &RangeSpec{Offset: start, Length: end - start + 1}
}

// Clamp resolves a requested range against the actual object size and
// returns the effective range to serve, or nil when the whole object should
// be served instead. An offset at or past the end of the object does not
// error; the store falls back to the full body, mirroring how S3-style
// stores ignore unsatisfiable ranges.
func (r *RangeSpec) Clamp(size int64) *RangeSpec {
	if r == nil || r.Offset >= size || r.Offset < 0 {
		return nil
	}

	length := size - r.Offset
	if r.Length > 0 && r.Length < length {
		length = r.Length
	}

	return &RangeSpec{Offset: r.Offset, Length: length}
}
