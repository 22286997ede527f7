// Command scriptcheck validates script documents without running them.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/engine/enemy"
	"github.com/milk9111/scenescript/script"
)

func main() {
	anyState := flag.Bool("any-state", false, "accept any behavior name in \"change state\"")
	verbose := flag.Bool("v", false, "list scenes and scripts of valid documents")
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: scriptcheck [-any-state] [-v] document...")
		os.Exit(2)
	}

	var states script.StateSet
	if !*anyState {
		reg, err := builtinBehaviors()
		if err != nil {
			log.Fatalf("scriptcheck: %v", err)
		}
		states = reg
	}

	if failed := run(os.Stdout, flag.Args(), states, *verbose); failed > 0 {
		os.Exit(1)
	}
}

func builtinBehaviors() (*engine.Registry, error) {
	spec, err := enemy.LoadSpec()
	if err != nil {
		return nil, err
	}
	reg := engine.NewRegistry()
	if err := enemy.Register(reg, spec); err != nil {
		return nil, err
	}
	return reg, nil
}

// run checks every path and reports each on w. It returns how many failed.
func run(w io.Writer, paths []string, states script.StateSet, verbose bool) int {
	failed := 0
	for _, path := range paths {
		s, err := check(path, states)
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", s)
		if verbose {
			s.list(w)
		}
	}
	if len(paths) > 1 {
		fmt.Fprintf(w, "%s, %d failed\n", english.Plural(len(paths), "document", ""), failed)
	}
	return failed
}

type summary struct {
	path    string
	size    int64
	doc     *script.Document
	actions int
}

func check(path string, states script.StateSet) (summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return summary{}, err
	}
	doc, err := script.LoadFile(path, script.Options{States: states})
	if err != nil {
		return summary{}, err
	}
	s := summary{path: path, size: info.Size(), doc: doc}
	for _, sc := range doc.Scripts {
		s.actions += len(sc.Actions)
	}
	return s, nil
}

func (s summary) String() string {
	return fmt.Sprintf("%s (%s): %s, %s, %s, %s, %s",
		s.path,
		humanize.Bytes(uint64(s.size)),
		english.Plural(len(s.doc.Scenes), "scene", ""),
		english.Plural(len(s.doc.Scripts), "script", ""),
		english.Plural(s.actions, "action", ""),
		english.Plural(len(s.doc.SpriteNames), "sprite", ""),
		english.Plural(len(s.doc.SoundNames), "sound", ""),
	)
}

func (s summary) list(w io.Writer) {
	for _, name := range s.doc.SceneOrder {
		info := s.doc.Scenes[name]
		marker := " "
		if name == s.doc.OpeningScene {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s scene %q %sx%s, hero health %s\n", marker, name,
			humanize.Ftoa(info.Box.Width()), humanize.Ftoa(info.Box.Height()), humanize.Ftoa(info.HeroHealth))
	}
	names := make([]string, 0, len(s.doc.Scripts))
	for name := range s.doc.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sc := s.doc.Scripts[name]
		fmt.Fprintf(w, "    script %q: %s\n", name, english.Plural(len(sc.Actions), "action", ""))
	}
}
