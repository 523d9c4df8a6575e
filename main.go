package main

import "github.com/deploymenttheory/go-nif/cmd"

func main() {
	cmd.Execute()
}
