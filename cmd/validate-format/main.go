// Command validate-format checks a project's rename format against every
// row and prints the names it would produce for a sample file.
package main

import (
	"fmt"
	"os"

	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/formatter"
	"github.com/mydehq/hwrename/internal/scanner"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: validate-format <config.json> [sample-file]")
		os.Exit(2)
	}
	sample := "example.txt"
	if len(os.Args) > 2 {
		sample = os.Args[2]
	}
	ext := scanner.SplitExt(sample)

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	tmpl, err := formatter.Compile(cfg.RenameFormat)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Format: %s\nArguments used: %d\n\n", tmpl, tmpl.Required())

	bad := 0
	for i, row := range cfg.Rows() {
		name, err := tmpl.Execute(row.Args, ext)
		if err != nil {
			bad++
			fmt.Printf("Row %d (%s): %v\n", i+1, row.Target, err)
			continue
		}
		fmt.Printf("Row %d (%s): %s\n", i+1, row.Target, name)
	}

	if bad > 0 {
		fmt.Printf("\n%d of %d rows cannot be formatted\n", bad, len(cfg.Data))
		os.Exit(1)
	}
}
