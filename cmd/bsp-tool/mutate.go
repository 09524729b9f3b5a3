package main

import (
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/bsp-tool/internal/bsp"
)

type substituteCmd struct {
	Args struct {
		Input  string `positional-arg-name:"IN" required:"true" description:"Input BSP file or directory tree"`
		Rules  string `positional-arg-name:"RULES" required:"true" description:"Substitution rules file (yaml/json)"`
		Output string `positional-arg-name:"OUT" description:"Output path (default: overwrite input)"`
	} `positional-args:"true"`
}

// Execute applies the substitution rules to the entity lump.
func (c *substituteCmd) Execute(_ []string) error {
	rules, err := readRules(c.Args.Rules)
	if err != nil {
		return err
	}

	b, err := loadInput(c.Args.Input)
	if err != nil {
		return err
	}

	n, err := b.SubstituteKeywords(rules)
	if err != nil {
		return err
	}

	out, err := saveOutput(b, c.Args.Input, c.Args.Output)
	if err != nil {
		return err
	}

	logrus.WithField("changed", n).Infof("substituted %s", out)
	return nil
}

type lowercaseCmd struct {
	Args struct {
		Input  string `positional-arg-name:"IN" required:"true" description:"Input BSP file or directory tree"`
		Output string `positional-arg-name:"OUT" description:"Output path (default: overwrite input)"`
	} `positional-args:"true"`

	Scope string `short:"s" long:"scope" choice:"all" choice:"entities" choice:"textures" default:"all" description:"Lumps to process"`
}

// Execute lowercases file references.
func (c *lowercaseCmd) Execute(_ []string) error {
	b, err := loadInput(c.Args.Input)
	if err != nil {
		return err
	}

	n, err := b.LowercaseFilePaths(bsp.Scope(c.Scope))
	if err != nil {
		return err
	}

	out, err := saveOutput(b, c.Args.Input, c.Args.Output)
	if err != nil {
		return err
	}

	logrus.WithField("changed", n).Infof("lowercased %s", out)
	return nil
}

type stripLightmapsCmd struct {
	Args struct {
		Input  string `positional-arg-name:"IN" required:"true" description:"Input BSP file or directory tree"`
		Output string `positional-arg-name:"OUT" description:"Output path (default: overwrite input)"`
	} `positional-args:"true"`
}

// Execute empties the lightmap lump.
func (c *stripLightmapsCmd) Execute(_ []string) error {
	b, err := loadInput(c.Args.Input)
	if err != nil {
		return err
	}

	if err := b.StripLightmaps(); err != nil {
		return err
	}

	out, err := saveOutput(b, c.Args.Input, c.Args.Output)
	if err != nil {
		return err
	}

	logrus.Infof("stripped lightmaps from %s", out)
	return nil
}
