package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tilth-dev/tilth/pkg/outline"
	"github.com/tilth-dev/tilth/pkg/tilthtypes"
)

// runWatch re-renders a file's outline to stdout on every save. It is
// best-effort and non-core: every save re-parses from scratch (no
// incremental reparse), matching the engine's non-goals.
func runWatch(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tilth watch <file>")
		os.Exit(1)
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilth watch: %v\n", err)
		os.Exit(1)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilth watch: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fmt.Fprintf(os.Stderr, "tilth watch: %v\n", err)
		os.Exit(1)
	}

	renderOutline(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				renderOutline(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "tilth watch: %v\n", err)
		}
	}
}

func renderOutline(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tilth watch: %v\n", err)
		return
	}
	lang := tilthtypes.ParseLangFromExt(path)
	fmt.Println(outline.Outline(string(content), lang, tilthOutlineLines, path))
	fmt.Println("---")
}

const tilthOutlineLines = 200
