// Command bsp-tool provides CLI utilities for BSP level containers.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/bsp-tool/internal/vars"
)

type rootCmd struct {
	Verbose        bool              `short:"v" long:"verbose" description:"Verbose per-lump output"`
	Version        versionCmd        `command:"version" description:"Show version information"`
	Info           infoCmd           `command:"info" description:"Show format and lump directory of BSP files or trees"`
	Explode        explodeCmd        `command:"explode" description:"Convert a BSP file into a directory tree"`
	Pack           packCmd           `command:"pack" description:"Convert a directory tree into a BSP file"`
	Convert        convertCmd        `command:"convert" description:"Convert between BSP file and directory tree (by output extension)"`
	Substitute     substituteCmd     `command:"substitute" description:"Substitute entity keys and values from a rules file"`
	Lowercase      lowercaseCmd      `command:"lowercase" description:"Lowercase file references in entities and textures"`
	StripLightmaps stripLightmapsCmd `command:"strip-lightmaps" description:"Remove all lightmap images"`
}

func main() {
	var root rootCmd
	parser := flags.NewParser(&root, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLogging(root.Verbose)
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

// setupLogging configures the logrus standard logger.
func setupLogging(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	vars.Print()
	return nil
}
