// lccs — клиент LCCS-WS в командной строке.
//
// Использование:
//
//	lccs [--url URL] [--access-token TOKEN] [--output text|json|yaml|html] <command> [flags]
//
// Примеры:
//
//	lccs classification-systems -v
//	lccs classes --system TerraClass_AMZ
//	lccs style-file --system_name TerraClass_AMZ --style_format_name QGIS -o styles/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/shaiso/lccs/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version, afero.NewOsFs())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
