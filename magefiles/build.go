//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the pivot command into bin/.
func (Build) Cli() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/pivot", "./cmd/pivot"), withStream())
	return err
}

// Runs go mod tidy.
func (Build) Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}

// Runs vet and then every test with the race detector.
func Test() error {
	mg.Deps(Vet)
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs go vet on every package.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs the example scene.
func Example() error {
	_, err := executeCmd("go", withArgs("run", "./example/pivotScene"), withStream())
	return err
}
