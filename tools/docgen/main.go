// Package main generates CLI reference documentation for the server and the
// opt API client, one markdown tree per binary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	optcmd "github.com/donaldgifford/osrs-price-tracker/cmd/opt/cmd"
	servercmd "github.com/donaldgifford/osrs-price-tracker/cmd/osrs-price-tracker/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	for _, root := range []*cobra.Command{servercmd.Root(), optcmd.Root()} {
		dir := filepath.Join(*output, root.Name())
		if err := generate(root, dir); err != nil {
			log.Fatalf("%s: %v", root.Name(), err)
		}
		fmt.Printf("CLI docs for %s generated in %s/\n", root.Name(), dir)
	}
}

func generate(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	root.DisableAutoGenTag = true
	if err := doc.GenMarkdownTree(root, dir); err != nil {
		return fmt.Errorf("generating docs: %w", err)
	}
	return nil
}
