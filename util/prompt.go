package util

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptString asks for a line of text, returning def when the answer is
// empty or cannot be read. Successive prompts must share r so that answers
// buffered ahead are not lost.
func PromptString(r *bufio.Reader, w io.Writer, prompt string, def string) string {
	fmt.Fprintf(w, "%s (%s): ", prompt, def)

	response, err := r.ReadString('\n')
	if err != nil && response == "" {
		return def
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return response
}

// PromptYN asks a yes/no question.
func PromptYN(r *bufio.Reader, w io.Writer, prompt string, def bool) bool {
	if def {
		fmt.Fprintf(w, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(w, "%s (y/N): ", prompt)
	}

	response, err := r.ReadString('\n')
	if err != nil && response == "" {
		return def
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return strings.ToLower(response) == "y"
}
