package huffman

import (
	"github.com/op/go-logging"
)

// LogModule is the go-logging module name used by this package.
const LogModule = "huffman"

var log = logging.MustGetLogger(LogModule)

// Importers that never configure go-logging only see warnings from this
// package.  A program that installs its own leveled backend, as cmd/huffpack
// does, chooses the level itself.
func init() {
	logging.SetLevel(logging.WARNING, LogModule)
}
