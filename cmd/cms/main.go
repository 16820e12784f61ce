// Command cms serves the file-backed document CMS.
package main

import (
	"os"

	"github.com/goliatone/go-filecms/cmd/cms/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
