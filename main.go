package main

import "github.com/aiexplorations/beam-column-simulation/cmd"

func main() {
	cmd.Execute()
}
