package logger

import (
	"io"
	"log"
	"os"
)

// Setup sets the log format with timestamp and file location. When logFile is
// set, output goes to both the file and stdout. The returned closer releases the file.
func Setup(logFile string) (io.Closer, error) {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if logFile == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(f, os.Stdout))
	return f, nil
}
