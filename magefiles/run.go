//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Bakes tracks for the bundled landing scenario.
func (Run) Bake() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/scrollscene", withArgs("bake", "-scenario", "scenarios/landing.yaml", "-stats"), withStream())
	return err
}

// Lints every scenario under scenarios/.
func (Run) Lint() error {
	mg.Deps(Build.Binary)
	files, err := scenarioFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := executeCmd("bin/scrollscene", withArgs("lint", "-scenario", f), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Draws the channel curves of the landing scenario.
func (Run) Plot() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/scrollscene", withArgs("plot", "-scenario", "scenarios/landing.yaml"), withStream())
	return err
}
