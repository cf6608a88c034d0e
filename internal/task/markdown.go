package task

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// codeBlock is a fenced code block pulled out of markdown, with the path
// hint from the paragraph immediately preceding it.
type codeBlock struct {
	hint    string
	lang    string
	content string
}

var pathHintRegex = regexp.MustCompile("^`([^`\n]+)`")

// ExtractChanges parses LLM-style markdown output into file changes.
//
// A fenced code block becomes a create change when the paragraph before it
// is a backtick-quoted path (e.g. "`src/main.go`"). A block fenced with the
// "delete" language lists paths to delete, one per line. Everything else is
// ignored.
func ExtractChanges(source []byte) ([]FileChange, error) {
	blocks, err := extractCodeBlocks(source)
	if err != nil {
		return nil, err
	}

	var changes []FileChange
	for _, b := range blocks {
		if b.lang == "delete" {
			for _, line := range strings.Split(b.content, "\n") {
				path := strings.TrimSpace(line)
				if path == "" {
					continue
				}
				changes = append(changes, FileChange{Path: path, Action: ActionDelete})
			}
			continue
		}

		path := pathFromHint(b.hint)
		if path == "" {
			continue
		}

		content := strings.TrimRight(b.content, "\n")
		if content != "" {
			content += "\n"
		}
		changes = append(changes, FileChange{
			Path:    path,
			Action:  ActionCreate,
			Content: ContentOf(content),
		})
	}

	return changes, nil
}

func extractCodeBlocks(source []byte) ([]codeBlock, error) {
	var blocks []codeBlock
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block codeBlock
		if fenced.Info != nil {
			block.lang = string(fenced.Info.Text(source))
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		block.content = content.String()

		// Read the hint from the raw paragraph source so the backtick
		// delimiters survive inline parsing.
		if prev := fenced.PreviousSibling(); prev != nil {
			if p, ok := prev.(*ast.Paragraph); ok {
				var raw bytes.Buffer
				plines := p.Lines()
				for i := 0; i < plines.Len(); i++ {
					pline := plines.At(i)
					raw.Write(pline.Value(source))
				}
				block.hint = strings.TrimSpace(raw.String())
			}
		}

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return blocks, nil
}

func pathFromHint(hint string) string {
	match := pathHintRegex.FindStringSubmatch(strings.TrimSpace(hint))
	if len(match) < 2 {
		return ""
	}
	path := strings.TrimSpace(match[1])
	if strings.Contains(path, " ") {
		return ""
	}
	return path
}
