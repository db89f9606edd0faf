package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fillkit/fillkit/internal/pdf/engine"
	"github.com/fillkit/fillkit/internal/pdf/fill"
)

var (
	fieldsPath = flag.String("fields", "", "JSON file with an ordered array of {fieldName, value} objects")
	outPath    = flag.String("out", "filled.pdf", "Output PDF path")
	overlay    = flag.Bool("overlay", false, "Draw values on blank pages instead of flattening the form")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}
	if *fieldsPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -fields is required\n\n")
		printUsage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(pdfPath string) error {
	doc, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("read PDF: %w", err)
	}

	fields, err := readFields(*fieldsPath)
	if err != nil {
		return fmt.Errorf("read fields: %w", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	filler := fill.NewService(engine.New(log), log)
	result, err := filler.Fill(fill.Request{
		Document:          doc,
		Fields:            fields,
		RenderTextOverlay: *overlay,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(*outPath, result.Document, 0o600); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("Wrote %s (%d fields filled, %d skipped)\n", *outPath, len(result.Filled), len(result.Skipped))
	for _, name := range result.Skipped {
		fmt.Printf("  skipped: %s\n", name)
	}
	if len(result.Skipped) > 0 && *verbose {
		fmt.Println("  known fields:")
		for _, name := range result.KnownFields {
			fmt.Printf("    %s\n", name)
		}
	}
	return nil
}

func readFields(path string) ([]fill.FieldValue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var wire []struct {
		FieldName string `json:"fieldName"`
		Value     string `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	fields := make([]fill.FieldValue, 0, len(wire))
	for i, w := range wire {
		if w.FieldName == "" {
			return nil, fmt.Errorf("entry %d has no fieldName", i)
		}
		fields = append(fields, fill.FieldValue{Name: w.FieldName, Value: w.Value})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields in %s", path)
	}
	return fields, nil
}

func printHelp() {
	fmt.Println("PDF Fill Form - Fill AcroForm fields and flatten or overlay the result")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -fields        JSON file with an ordered array of {fieldName, value} objects")
	fmt.Println("  -out           Output PDF path (default filled.pdf)")
	fmt.Println("  -overlay       Draw values on blank pages instead of flattening the form")
	fmt.Println("  -verbose       Enable verbose output")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdf_fill_form -fields values.json form.pdf")
	fmt.Println("  pdf_fill_form -fields values.json -overlay -out overlay.pdf form.pdf")
	fmt.Println()
	fmt.Println("FIELD MATCHING:")
	fmt.Println("  Names are matched case-insensitively, and array-index suffixes")
	fmt.Println("  like [0] may be supplied or omitted on either side.")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  pdf_fill_form [OPTIONS] <pdf_file>")
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}
