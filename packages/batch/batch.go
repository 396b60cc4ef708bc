// Package batch reads newline-delimited URL list files.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadURLFile returns the URLs in path, one per line, in file order.
// Blank lines and lines starting with '#' are ignored.
func ReadURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open URL file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read URL file: %w", err)
	}
	return urls, nil
}
