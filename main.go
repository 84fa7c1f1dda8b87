package main

import "github.com/nardosm/ik-registry/cmd"

func main() {
	cmd.Execute()
}
