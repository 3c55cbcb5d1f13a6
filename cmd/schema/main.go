// Command schema writes the JSON schema of the renewscope config, embedded by pkg/config for verification
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/renewscope/pkg/config"
)

type options struct {
	Title string `long:"title" default:"renewscope configuration" description:"schema title"`
	Args  struct {
		Output string `positional-arg-name:"OUTPUT" description:"output file, - for stdout"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	output := opts.Args.Output
	if output == "" {
		output = "schema.json"
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		fh, err := os.Create(output) //nolint:gosec // output path comes from CLI
		if err != nil {
			log.Fatalf("failed to create schema file: %v", err)
		}
		defer fh.Close()
		w = fh
	}

	if err := writeSchema(w, opts.Title); err != nil {
		log.Fatalf("failed to write schema: %v", err)
	}
	if output != "-" {
		fmt.Printf("Schema generated successfully at %s\n", output)
	}
}

func writeSchema(w io.Writer, title string) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	schema.Title = title

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}
