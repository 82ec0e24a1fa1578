package ssh

import "strings"

// quote wraps s in single quotes for a POSIX shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Command joins argv into one shell command line, quoting every word.
func Command(argv ...string) string {
	words := make([]string, len(argv))
	for i, a := range argv {
		words[i] = quote(a)
	}
	return strings.Join(words, " ")
}

// InitScript builds the command that drives an init.d service.
func InitScript(service, action string) string {
	return Command("/etc/init.d/"+service, action)
}
