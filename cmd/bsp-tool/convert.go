package main

import (
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/bsp-tool/internal/bsp"
)

type ioArgs struct {
	Input  string `positional-arg-name:"IN" required:"true" description:"Input BSP file or directory tree"`
	Output string `positional-arg-name:"OUT" required:"true" description:"Output path"`
}

type explodeCmd struct {
	Args ioArgs `positional-args:"true"`
}

// Execute writes the input as a directory tree.
func (c *explodeCmd) Execute(_ []string) error {
	b, err := loadInput(c.Args.Input)
	if err != nil {
		return err
	}

	if err := b.WriteDir(c.Args.Output); err != nil {
		return err
	}

	logrus.WithField("format", b.Format()).Infof("exploded %s", c.Args.Output)
	return nil
}

type packCmd struct {
	Args ioArgs `positional-args:"true"`
}

// Execute writes the input as a BSP file.
func (c *packCmd) Execute(_ []string) error {
	b, err := loadInput(c.Args.Input)
	if err != nil {
		return err
	}

	if err := b.WriteFile(c.Args.Output); err != nil {
		return err
	}

	logrus.WithField("format", b.Format()).Infof("packed %s", c.Args.Output)
	return nil
}

type convertCmd struct {
	Args ioArgs `positional-args:"true"`
}

// Execute writes a BSP file for a .bsp output and a directory tree otherwise.
func (c *convertCmd) Execute(_ []string) error {
	b, err := loadInput(c.Args.Input)
	if err != nil {
		return err
	}

	if err := bsp.Save(b, c.Args.Output); err != nil {
		return err
	}

	logrus.WithField("format", b.Format()).Infof("converted %s", c.Args.Output)
	return nil
}
