package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	huffman "github.com/chronos-tachyon/huffpack"
)

const progName = "huffpack"
const usageMessageRaw = `
Usage: huffpack [-d] [-o OUTPUT] SUBCOMMAND FILE

Subcommands:
  compress FILE
	Compress FILE into an archive.  The archive is written to OUTPUT, or
	to FILE with its extension replaced by ".bin".

  decompress FILE
	Decompress the archive FILE.  The original bytes are written to
	OUTPUT, or to FILE with its extension replaced by
	"_decompressed.txt".

  roundtrip FILE
	Compress FILE, then decompress the archive just written.  Both
	outputs use the default paths.

Options:
  -d, -debug	Enable debug logging.
  -o, -output	Write to OUTPUT instead of the default path.
`

const (
	exitFailure = 1
	exitUsage   = 64
)

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var log = logging.MustGetLogger(progName)

var leveledLogBackend logging.LeveledBackend

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(exitUsage)
}

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{color:bold}%{level:6s}%{color:reset} %{module:-8s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func compress(src, dst string) (string, error) {
	out, err := huffman.CompressFile(src, dst)
	if err != nil {
		log.Errorf("compression failed: %v", err)
		return "", err
	}
	log.Infof("Compressed successfully: %s", out)
	return out, nil
}

func decompress(src, dst string) (string, error) {
	out, err := huffman.DecompressFile(src, dst)
	if err != nil {
		log.Errorf("decompression failed: %v", err)
		return "", err
	}
	log.Infof("Decompressed successfully: %s", out)
	return out, nil
}

func roundtrip(src string) error {
	archive, err := compress(src, "")
	if err != nil {
		log.Warning("skipping decompression")
		return err
	}
	_, err = decompress(archive, "")
	return err
}

func main() {
	startLogging()

	ourFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	// Usage strings are hardcoded above.

	var debugLogging bool
	var outputPath string
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")
	ourFlags.StringVar(&outputPath, "output", "", "")
	ourFlags.StringVar(&outputPath, "o", "", "")

	argErr := ourFlags.Parse(os.Args[1:])
	if errors.Is(argErr, flag.ErrHelp) {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	if ourFlags.NArg() != 2 {
		usageErrorf("expected SUBCOMMAND FILE, got %d arguments", ourFlags.NArg())
	}
	subcommand, path := ourFlags.Arg(0), ourFlags.Arg(1)

	var err error
	switch subcommand {
	default:
		usageErrorf("unknown subcommand \"%s\"", subcommand)
	case "compress":
		_, err = compress(path, outputPath)
	case "decompress":
		_, err = decompress(path, outputPath)
	case "roundtrip":
		if outputPath != "" {
			usageErrorf("-o cannot be used with roundtrip")
		}
		err = roundtrip(path)
	}

	if err != nil {
		os.Exit(exitFailure)
	}
}
