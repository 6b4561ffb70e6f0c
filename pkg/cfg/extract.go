package cfg

import (
	"regexp"
	"strings"
)

// typeKeywords are the C type keywords that open a declaration or a
// function signature line.
var typeKeywords = []string{
	"void", "int", "float", "double", "char", "long", "short",
	"unsigned", "signed", "bool", "size_t",
}

var (
	ifCondRe     = regexp.MustCompile(`if\s*\((.*)\)`)
	elseIfCondRe = regexp.MustCompile(`else\s+if\s*\((.*)\)`)
)

// Extract scans source text line by line and groups it into an ordered
// sequence of basic blocks. It is a best-effort heuristic for small,
// simply structured C-like function bodies: there is no lexer or parser,
// only a fixed-priority rule list applied to each trimmed line. Lines
// matching no rule are dropped silently, so Extract never fails.
//
// The returned sequence always starts with a synthetic entry block and
// ends with at least one exit block.
func Extract(source string) []Block {
	s := scanState{}
	s.out = append(s.out, s.newBlock(KindEntry, StartLabel))
	s.cur = s.newBlock(KindStatement, "")

	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line == "{" || line == "}" || strings.HasPrefix(line, "//") {
			continue
		}
		s.classify(line)
	}

	if len(s.cur.Lines) > 0 {
		s.out = append(s.out, s.cur)
	}
	if s.out[len(s.out)-1].Kind != KindExit {
		s.out = append(s.out, s.newBlock(KindExit, ExitLabel))
	}
	return s.out
}

// scanState is the accumulator threaded through the line scan: the
// finished blocks, the block currently being accumulated, and the next
// block ID. Each Extract call owns its own scanState, so repeated and
// concurrent invocations never share state.
type scanState struct {
	out    []Block
	cur    Block
	nextID int
}

func (s *scanState) newBlock(kind Kind, label string) Block {
	b := Block{ID: s.nextID, Kind: kind, Label: label}
	s.nextID++
	return b
}

// classify applies the ordered rule list to one trimmed, non-empty line.
// Rules are checked in fixed priority order; the first match wins.
func (s *scanState) classify(line string) {
	switch {
	case isSignature(line):
		s.cur.Lines = append(s.cur.Lines, line)

	case isDeclaration(line):
		s.cur.Lines = append(s.cur.Lines, line)

	case strings.HasPrefix(line, "if"):
		// The current block is pushed even when empty. Back-to-back
		// decisions are therefore separated by an empty statement block
		// that serves as the True target of the first decision.
		s.out = append(s.out, s.cur)
		s.emitDecision(extractCondition(ifCondRe, line))

	case isElseIf(line):
		s.finishCurrent()
		s.emitDecision(extractCondition(elseIfCondRe, line))

	case isElse(line):
		// The block opened here is the False destination of the matching
		// decision, not a condition itself.
		s.finishCurrent()
		s.cur = s.newBlock(KindStatement, "")

	case strings.Contains(line, "return"):
		s.cur.Lines = append(s.cur.Lines, line)
		s.out = append(s.out, s.cur)
		s.out = append(s.out, s.newBlock(KindExit, ExitLabel))
		s.cur = s.newBlock(KindStatement, "")

	case strings.HasSuffix(line, ";"):
		s.cur.Lines = append(s.cur.Lines, line)
	}
	// Anything else is dropped without error.
}

// finishCurrent pushes the current block to the output when it holds any
// lines, discarding it otherwise.
func (s *scanState) finishCurrent() {
	if len(s.cur.Lines) > 0 {
		s.out = append(s.out, s.cur)
	}
}

// emitDecision appends a decision block carrying cond as both label and
// sole source line, then opens a fresh statement block.
func (s *scanState) emitDecision(cond string) {
	d := s.newBlock(KindDecision, cond)
	d.Lines = []string{cond}
	s.out = append(s.out, d)
	s.cur = s.newBlock(KindStatement, "")
}

// isSignature reports whether line looks like a function signature:
// a type keyword followed by a parenthesized parameter list, without a
// trailing statement terminator.
func isSignature(line string) bool {
	if !strings.Contains(line, "(") || !strings.Contains(line, ")") {
		return false
	}
	if strings.HasSuffix(line, ";") {
		return false
	}
	return startsWithTypeKeyword(line)
}

// isDeclaration reports whether line is a variable declaration: it starts
// with a type keyword and does not itself contain an if.
func isDeclaration(line string) bool {
	return startsWithTypeKeyword(line) && !strings.Contains(line, "if")
}

func isElseIf(line string) bool {
	rest := strings.TrimPrefix(line, "}")
	rest = strings.TrimSpace(rest)
	return strings.HasPrefix(rest, "else if") || strings.HasPrefix(line, "else if")
}

func isElse(line string) bool {
	rest := strings.TrimPrefix(line, "}")
	rest = strings.TrimSpace(rest)
	return strings.HasPrefix(rest, "else") || strings.HasPrefix(line, "else")
}

func startsWithTypeKeyword(line string) bool {
	for _, kw := range typeKeywords {
		if strings.HasPrefix(line, kw+" ") || strings.HasPrefix(line, kw+"*") {
			return true
		}
	}
	return false
}

// extractCondition pulls the boolean condition out of the first
// parenthesized group matched by re. When no group matches, the whole
// trimmed line is used as the condition text.
func extractCondition(re *regexp.Regexp, line string) string {
	if m := re.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	return line
}
