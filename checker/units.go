package checker

import "fmt"

// Binary (1024-based) byte units for human-readable message text. Perfdata
// values stay raw bytes; only messages use these.
type byteUnit struct {
	factor float64
	suffix string
}

var byteUnits = []byteUnit{
	{1125899906842624, `PiB`},
	{1099511627776, `TiB`},
	{1073741824, `GiB`},
	{1048576, `MiB`},
	{1024, `KiB`},
}

// ByteSize collapses a raw byte count to the largest fitting binary unit
func ByteSize(bytes float64) string {
	if bytes < 0 {
		bytes = 0
	}
	for _, u := range byteUnits {
		if bytes >= u.factor {
			return fmt.Sprintf(`%.1f%s`, bytes/u.factor, u.suffix)
		}
	}
	return fmt.Sprintf(`%.0fB`, bytes)
}
