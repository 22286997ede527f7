package engine

import "log"

// Debug turns on the per-action trace.
var Debug bool

func debugf(format string, args ...any) {
	if Debug {
		log.Printf("engine: "+format, args...)
	}
}
