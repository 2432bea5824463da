package cli

// splitCommand splits an input line into the command word, the second
// token, and the rest of the line. The rest is everything after the
// whitespace run following the second token, preserved verbatim so
// content and snapshot messages keep their interior spacing exactly as
// typed. Missing parts come back as empty strings.
func splitCommand(line string) (name, arg, rest string) {
	i := skipSpace(line, 0)
	name, i = readToken(line, i)
	i = skipSpace(line, i)
	arg, i = readToken(line, i)
	i = skipSpace(line, i)
	return name, arg, line[i:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func readToken(s string, i int) (string, int) {
	start := i
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return s[start:i], i
}
