package shell

import (
	"os"
	"path/filepath"
	"strings"
)

const keyTab = '\t'

// Complete implements tab completion of command names and of file names for
// the commands that take a file argument. The signature matches the
// AutoCompleteCallback of golang.org/x/term.
func Complete(line string, pos int, key rune) (string, int, bool) {
	if key != keyTab || pos != len(line) {
		return "", 0, false
	}

	words := strings.Fields(line)
	endsWithSpace := strings.HasSuffix(line, " ")

	switch {
	case len(words) == 0:
		return "", 0, false

	case len(words) == 1 && !endsWithSpace:
		var names []string
		for _, cmd := range commands {
			if strings.HasPrefix(cmd.name, words[0]) {
				names = append(names, cmd.name)
			}
		}
		completed := commonPrefix(names)
		if len(names) == 1 {
			completed += " "
		}
		if len(completed) <= len(words[0]) {
			return "", 0, false
		}
		return completed, len(completed), true

	case words[0] == "load" || words[0] == "dump":
		prefix := ""
		if !endsWithSpace && len(words) > 1 {
			prefix = words[len(words)-1]
		}
		completed, ok := completePath(prefix)
		if !ok {
			return "", 0, false
		}
		newLine := line[:len(line)-len(prefix)] + completed
		return newLine, len(newLine), true
	}

	return "", 0, false
}

// completePath extends the path prefix to the longest common prefix of all
// matching directory entries. A single matching directory gets a trailing separator.
func completePath(prefix string) (string, bool) {
	matches, err := filepath.Glob(escapeGlob(prefix) + "*")
	if err != nil || len(matches) == 0 {
		return "", false
	}

	completed := commonPrefix(matches)
	if len(matches) == 1 {
		if info, err := os.Stat(completed); err == nil && info.IsDir() {
			completed += string(filepath.Separator)
		}
	}
	if completed == prefix {
		return "", false
	}
	return completed, true
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, value := range values[1:] {
		for !strings.HasPrefix(value, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func escapeGlob(path string) string {
	replacer := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)
	return replacer.Replace(path)
}
