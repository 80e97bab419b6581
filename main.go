package main

import "github.com/impactmap/impactmap-cli/cmd"

func main() {
	cmd.Execute()
}
