package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/woozymasta/bsp-tool/internal/bsp"
)

type infoCmd struct {
	Args struct {
		Inputs []string `positional-arg-name:"IN" required:"1" description:"BSP files or directory trees"`
	} `positional-args:"true"`

	Jobs int `short:"j" long:"jobs" default:"4" description:"Number of inputs read concurrently"`
}

// Execute prints the format and lump directory of every input in argument order.
func (c *infoCmd) Execute(_ []string) error {
	reports := make([]string, len(c.Args.Inputs))

	var eg errgroup.Group
	if c.Jobs > 0 {
		eg.SetLimit(c.Jobs)
	}

	for i, in := range c.Args.Inputs {
		eg.Go(func() error {
			b, err := bsp.Load(in)
			if err != nil {
				return err
			}

			report, err := renderInfo(in, b)
			if err != nil {
				return err
			}

			reports[i] = report
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	fmt.Print(strings.Join(reports, "\n"))
	return nil
}

// renderInfo formats the lump directory as it would be written.
func renderInfo(path string, b *bsp.Bsp) (string, error) {
	entries, err := b.Directory()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", path, b.Format())
	for i, l := range b.Lumps() {
		e := entries[i]
		state := ""
		if !l.Present {
			state = " (synthesized)"
		}

		fmt.Fprintf(&sb, "  %-16s %-10s %10d @ %10d %10s %016x%s\n",
			l.Name, l.Kind, e.Length, e.Offset, humanize.Bytes(uint64(e.Length)), bsp.Digest(l.Data), state)
	}

	if len(entries) > len(b.Lumps()) {
		e := entries[len(entries)-1]
		fmt.Fprintf(&sb, "  %-16s %-10s %10d @ %10d\n", "(trailer)", "", e.Length, e.Offset)
	}

	return sb.String(), nil
}
