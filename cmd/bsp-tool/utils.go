package main

import (
	"os"

	"github.com/invopop/yaml"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/bsp-tool/internal/bsp"
	"github.com/woozymasta/bsp-tool/internal/lump"
	"github.com/woozymasta/bsp-tool/internal/probe"
)

// readRules reads substitution rules from a yaml or json file.
func readRules(path string) (lump.Substitutions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return lump.Substitutions{}, err
	}

	var rules lump.Substitutions
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return lump.Substitutions{}, err
	}

	return rules, rules.Validate()
}

// loadInput loads a BSP file or directory tree and logs synthesized lumps.
func loadInput(path string) (*bsp.Bsp, error) {
	b, err := bsp.Load(path)
	if err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{"input": path, "format": b.Format().String()})
	for _, l := range b.Lumps() {
		if !l.Present {
			log.WithField("lump", l.Name).Debug("lump absent, using empty content")
			continue
		}
		log.WithField("lump", l.Name).Debugf("lump %d bytes", len(l.Data))
	}

	return b, nil
}

// saveOutput writes b to output, or back to input in its own form when
// output is empty. It returns the written path.
func saveOutput(b *bsp.Bsp, input string, output string) (string, error) {
	if output != "" {
		return output, bsp.Save(b, output)
	}

	kind, _, err := probe.Path(input)
	if err != nil {
		return input, err
	}
	if kind == probe.Directory {
		return input, b.WriteDir(input)
	}

	return input, b.WriteFile(input)
}
