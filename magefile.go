// +build mage

package main

import (
	"log"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// Build compiles the harmonize CLI.
func Build() {
	must(sh.Run("go", "build", "./..."))
}

// Test runs the full test suite.
func Test() {
	mg.Deps(Build)
	must(sh.Run("go", "test", "./..."))
}

// Vet runs go vet over the module.
func Vet() {
	must(sh.Run("go", "vet", "./..."))
}
