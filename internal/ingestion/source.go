package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyDescription is returned when a source yields no text.
var ErrEmptyDescription = errors.New("job description is empty")

// Load reads a job description. src is "-" for stdin, "@path" for a file,
// or the description itself. HTML input is reduced to its text.
func Load(src string, stdin io.Reader) (string, error) {
	var raw string
	switch {
	case src == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = string(data)
	case strings.HasPrefix(src, "@"):
		data, err := os.ReadFile(strings.TrimPrefix(src, "@"))
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("file not found: %w", err)
			}
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		raw = string(data)
	default:
		raw = src
	}

	text := raw
	if LooksLikeHTML(raw) {
		extracted, err := ExtractText(raw)
		if err != nil {
			return "", err
		}
		text = extracted
	} else {
		text = CleanText(raw)
	}

	if text == "" {
		return "", ErrEmptyDescription
	}
	return text, nil
}
