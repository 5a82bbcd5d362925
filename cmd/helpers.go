package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line and ensure cursor is at start of new line
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// withSpinner runs fn behind a spinner unless verbose output is on.
func withSpinner(message string, fn func() error) (err error) {
	if getVerbose() {
		fmt.Println(message)
		err = fn()
		return err
	}

	sp := newSpinner(message)
	sp.start()
	err = fn()
	sp.stopSpinner()
	return err
}

func getOutputDir(flagValue, configValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = configValue
	}
	return outDir
}

func ensureOutputDir(outDir string) (err error) {
	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outDir)
		return err
	}
	return err
}

// writeOutput writes data to outDir/name and returns the full path.
func writeOutput(outDir, name string, data []byte) (path string, err error) {
	path = filepath.Join(outDir, name)
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write %s", path)
		return path, err
	}
	return path, err
}

func sanitizeFilename(name string) (sanitized string) {
	// Convert to lowercase
	sanitized = strings.ToLower(name)

	// Replace spaces and special chars with hyphens
	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	// Trim hyphens from ends
	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}
