package csvcore

import (
	"fmt"
	"os"
)

// logf writes a diagnostic line to stderr. No structured logging library
// is imported anywhere in this module, matching the bare
// fmt.Fprintf(os.Stderr, ...) idiom used for diagnostics throughout.
func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
