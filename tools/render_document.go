package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
)

// Renders a resume JSON file (full or partial, generation-service shaped)
// merged over the default document.
func main() {
	in := flag.String("in", "resume.json", "input JSON file")
	out := flag.String("out", "", "output file, stdout when empty")
	format := flag.String("format", "html", "html or text")
	flag.Parse()

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read document: %v\n", err)
		os.Exit(2)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	// accept the generation envelope as well as a bare document
	if data, ok := m["data"].(map[string]interface{}); ok {
		m = data
	}
	partial, err := model.NewPartialFromMap(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "document: %v\n", err)
		os.Exit(2)
	}
	doc := usecase.Merge(model.Default(), partial)
	tree := render.Render(&doc)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create out: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "html":
		err = render.HTML(w, tree)
	case "text":
		err = render.Text(w, tree)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "rendered %s\n", *in)
}
