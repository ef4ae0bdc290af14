// Package output delivers a rendered directory tree to stdout, a file or the clipboard.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/temirov/ecotr3/internal/services/clipboard"
)

const (
	fileNameInfix       = "_ecotr3"
	fileNameStatsSuffix = "_with_stats"
	fileNameExtension   = ".txt"
	fallbackRootName    = "root"

	savedMessageFormat  = "Directory tree saved to %s\n"
	copiedMessage       = "Directory tree copied to clipboard\n"
	errorWriteFormat    = "error creating output file %s: %w"
	errorClipboardLabel = "error copying to clipboard: %w"
)

// Sink receives one finished rendering.
type Sink interface {
	Deliver(rendering string) error
}

// FileName returns the default output file name for a tree rooted at rootPath.
func FileName(rootPath string, withStats bool) string {
	rootName := filepath.Base(filepath.Clean(rootPath))
	if rootName == "." || rootName == string(filepath.Separator) || rootName == "" {
		rootName = fallbackRootName
	}
	name := rootName + fileNameInfix
	if withStats {
		name += fileNameStatsSuffix
	}
	return name + fileNameExtension
}

type writerSink struct {
	stdout io.Writer
}

// NewWriterSink prints the rendering followed by a newline.
func NewWriterSink(stdout io.Writer) Sink {
	return &writerSink{stdout: stdout}
}

func (sink *writerSink) Deliver(rendering string) error {
	_, writeError := fmt.Fprintln(sink.stdout, rendering)
	return writeError
}

type fileSink struct {
	path   string
	stdout io.Writer
}

// NewFileSink writes the rendering verbatim to path and reports the file name on stdout.
func NewFileSink(path string, stdout io.Writer) Sink {
	return &fileSink{path: path, stdout: stdout}
}

func (sink *fileSink) Deliver(rendering string) error {
	if writeError := os.WriteFile(sink.path, []byte(rendering), 0o644); writeError != nil {
		return fmt.Errorf(errorWriteFormat, sink.path, writeError)
	}
	if sink.stdout != nil {
		fmt.Fprintf(sink.stdout, savedMessageFormat, sink.path)
	}
	return nil
}

type clipboardSink struct {
	copier clipboard.Copier
	stdout io.Writer
}

// NewClipboardSink copies the rendering through copier and confirms on stdout.
func NewClipboardSink(copier clipboard.Copier, stdout io.Writer) Sink {
	return &clipboardSink{copier: copier, stdout: stdout}
}

func (sink *clipboardSink) Deliver(rendering string) error {
	if copyError := sink.copier.Copy(rendering); copyError != nil {
		return fmt.Errorf(errorClipboardLabel, copyError)
	}
	if sink.stdout != nil {
		fmt.Fprint(sink.stdout, copiedMessage)
	}
	return nil
}
