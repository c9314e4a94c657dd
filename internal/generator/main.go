// Command generator regenerates adder/precomputed.go, the structural
// constants of the reference geometry baked in as regression anchors.
package main

import (
	"os/exec"

	"github.com/consensys/bavard"

	"github.com/modsqr/precompute/adder"
	"github.com/modsqr/precompute/geometry"
)

type templateData struct {
	AllSignBits string
	Term0       string
	Term2       string
}

//go:generate go run main.go
func main() {
	cfg := geometry.DefaultConfig()
	data := templateData{
		AllSignBits: adder.AllSignBits(cfg.Radix).Text(16),
		Term0:       adder.Term0(cfg).Text(16),
		Term2:       adder.Term2(cfg).Text(16),
	}

	bgen := bavard.NewBatchGenerator("", 0, "internal/generator")
	entries := []bavard.Entry{
		{File: "../../adder/precomputed.go", Templates: []string{"precomputed.go.tmpl"}},
	}
	if err := bgen.Generate(data, "adder", "./templates/", entries...); err != nil {
		panic(err)
	}

	if err := exec.Command("gofmt", "-w", "../../adder").Run(); err != nil {
		panic(err)
	}
}
