package services

import (
	"bufio"
	"os"
	"strings"
)

// LoadBlackList reads a newline-separated list of forbidden passwords into a
// map. Entries are lowercased so lookups are case-insensitive.
func LoadBlackList(filePath string) (map[string]bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	blackList := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entry := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if entry == "" {
			continue
		}
		blackList[entry] = true
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return blackList, nil
}
