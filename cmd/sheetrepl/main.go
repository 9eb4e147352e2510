// Command sheetrepl is a thin, line-oriented demonstration of the
// sheet package. It is not part of the core engine; it exists only to
// exercise the library from a runnable main.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"sheetengine/grid"
	"sheetengine/sheet"
)

var quiet = flag.Bool("q", false, "suppress the interactive prompt")

func main() {
	flag.Parse()

	s := sheet.CreateSheet()
	if err := run(s, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("sheetrepl: %v", err)
	}
}

// run executes commands read from in, writing output and prompts to
// out. Supported commands:
//
//	set <POS> <text>   parse and install text at POS
//	get <POS>          print POS's value, or "" if empty
//	clear <POS>        clear POS
//	print values       dump the sheet's values
//	print texts        dump the sheet's raw texts
//	quit               exit
func run(s *sheet.Sheet, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if !*quiet {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return nil
		case "set":
			if len(fields) < 3 {
				fmt.Fprintln(out, "usage: set <POS> <text>")
				continue
			}
			if err := handleSet(s, fields[1], fields[2]); err != nil {
				fmt.Fprintln(out, "error:", err)
			}
		case "get":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: get <POS>")
				continue
			}
			if err := handleGet(s, out, fields[1]); err != nil {
				fmt.Fprintln(out, "error:", err)
			}
		case "clear":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: clear <POS>")
				continue
			}
			if err := handleClear(s, fields[1]); err != nil {
				fmt.Fprintln(out, "error:", err)
			}
		case "print":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: print values|texts")
				continue
			}
			if err := handlePrint(s, out, fields[1]); err != nil {
				fmt.Fprintln(out, "error:", err)
			}
		default:
			fmt.Fprintln(out, "unknown command:", fields[0])
		}
	}
}

func parsePos(text string) (grid.Position, error) {
	p := grid.Parse(strings.ToUpper(text))
	if p == grid.Invalid {
		return p, fmt.Errorf("not a cell reference: %q", text)
	}
	return p, nil
}

func handleSet(s *sheet.Sheet, posText, content string) error {
	pos, err := parsePos(posText)
	if err != nil {
		return err
	}
	return s.SetCell(pos, content)
}

func handleGet(s *sheet.Sheet, out io.Writer, posText string) error {
	pos, err := parsePos(posText)
	if err != nil {
		return err
	}
	cell, err := s.GetCell(pos)
	if err != nil {
		return err
	}
	if cell == nil {
		fmt.Fprintln(out, "")
		return nil
	}
	fmt.Fprintln(out, cell.GetValue().String())
	return nil
}

func handleClear(s *sheet.Sheet, posText string) error {
	pos, err := parsePos(posText)
	if err != nil {
		return err
	}
	return s.ClearCell(pos)
}

func handlePrint(s *sheet.Sheet, out io.Writer, what string) error {
	switch strings.ToLower(what) {
	case "values":
		return s.PrintValues(out)
	case "texts":
		return s.PrintTexts(out)
	default:
		return fmt.Errorf("print what? values|texts")
	}
}
