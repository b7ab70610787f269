package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"marketai-api/internal/generator"
	"marketai-api/internal/prompt"
)

const shellHelp = `Type a product description to generate content for the current type.
Commands:
  /type <name>   switch content type
  /types         list content types
  /again         regenerate the last request
  /copy          copy the current content to the clipboard
  /show          print the current content
  /help          show this help
  /quit          leave`

// shell 交互式会话，一行描述触发一次生成
type shell struct {
	session  *generator.Session
	clip     generator.Clipboard
	in       *bufio.Scanner
	out      io.Writer
	category string
}

func newShell(session *generator.Session, clip generator.Clipboard, in io.Reader, out io.Writer) *shell {
	return &shell{
		session:  session,
		clip:     clip,
		in:       bufio.NewScanner(in),
		out:      out,
		category: string(prompt.DefaultCategory),
	}
}

func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, shellHelp)
	for {
		fmt.Fprintf(s.out, "[%s]> ", s.category)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(s.in.Text())
		if !strings.HasPrefix(line, "/") {
			s.report(s.session.Generate(ctx, s.category, line))
			continue
		}

		cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
		switch cmd {
		case "quit", "exit":
			return nil
		case "type":
			s.switchCategory(strings.TrimSpace(arg))
		case "types":
			printCategories(s.out)
		case "again":
			s.report(s.session.Regenerate(ctx))
		case "copy":
			if err := s.session.Copy(s.clip); err != nil {
				fmt.Fprintln(s.out, "Error: "+userMessage(err))
			} else {
				fmt.Fprintln(s.out, "Content copied to clipboard!")
			}
		case "show":
			fmt.Fprintln(s.out, s.session.Current())
		case "help":
			fmt.Fprintln(s.out, shellHelp)
		default:
			fmt.Fprintf(s.out, "Unknown command /%s, try /help\n", cmd)
		}
	}
}

func (s *shell) switchCategory(name string) {
	if _, ok := prompt.Lookup(name); !ok {
		fmt.Fprintf(s.out, "Unknown content type %q, try /types\n", name)
		return
	}
	s.category = name
}

func (s *shell) report(content string, err error) {
	if err != nil {
		fmt.Fprintln(s.out, "Error: "+userMessage(err))
		return
	}
	fmt.Fprintln(s.out, content)
}
