package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/classify"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/membership"
	"github.com/goliatone/go-formlayout/pkg/title"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint layout documents for node types and options that will not render as written.\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(flag.Args(), os.Stderr))
}

func run(paths []string, out io.Writer) int {
	var violations []violation
	for _, path := range paths {
		violations = append(violations, lintFile(path)...)
	}
	if len(violations) == 0 {
		return 0
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(out, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintFile(path string) []violation {
	nodes, err := layout.LoadFile(path)
	if err != nil {
		return []violation{{file: path, location: "document", message: err.Error()}}
	}
	return lintNodes(path, []string{"layout"}, nodes, nil)
}

func lintNodes(file string, path []string, nodes []*layout.Node, parent *layout.Node) []violation {
	var result []violation
	for idx, node := range nodes {
		next := appendPath(path, strconv.Itoa(idx))
		result = append(result, lintNode(file, next, node, parent)...)
		result = append(result, lintNodes(file, appendPath(next, "items"), node.Items, node)...)
	}
	return result
}

func lintNode(file string, path []string, node *layout.Node, parent *layout.Node) []violation {
	var messages []string
	opts := node.Options

	if !node.IsRef() && !classify.Recognized(node.Type) {
		msg := fmt.Sprintf("unrecognized node type %q renders as a passthrough", node.Type)
		if suggestion, ok := classify.Suggest(node.Type); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
		messages = append(messages, msg)
	}

	if opts.Minimum != nil && opts.Maximum != nil && !opts.HasRange() {
		messages = append(messages, "a zero minimum or maximum does not switch the node to a range slider")
	}
	if opts.HasRange() && node.Type != classify.TypeRange && classify.Recognized(node.Type) {
		declared := classify.Classify(node.Type, nil).Category
		if declared != classify.CategoryInput && declared != classify.CategorySlider {
			messages = append(messages, fmt.Sprintf("minimum and maximum force this %s to render as a range slider", node.Type))
		}
	}

	category := classify.ClassifyNode(node).Category
	if category == classify.CategoryTabs && strings.Contains(opts.Title, title.Marker) {
		messages = append(messages, "title templates are not expanded for tabs")
	}

	if node.ArrayItem && !node.IsRef() {
		if node.ArrayItemType == "" {
			messages = append(messages, "array item has no arrayItemType and can never be reordered")
		}
		if parent == nil {
			messages = append(messages, "array item has no enclosing array")
		}
	}
	if opts.Removable && !node.ArrayItem && !node.RecursiveReference {
		messages = append(messages, "removable has no effect outside array items")
	}
	if opts.Orderable && membership.Describe(node).TabFamily() {
		messages = append(messages, "items of tab arrays are never orderable")
	}

	result := make([]violation, 0, len(messages))
	for _, msg := range messages {
		result = append(result, violation{file: file, location: formatLocation(path), message: msg})
	}
	return result
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
