package logger

import (
	"io"
	"os"
)

var osExit = os.Exit

func osStdout() io.Writer { return os.Stdout }
