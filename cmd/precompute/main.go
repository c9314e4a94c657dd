package main

import "github.com/modsqr/precompute/cmd"

func main() {
	cmd.Execute()
}
