package main

import "github.com/cropmaint/machine-maintenance/cmd"

func main() {
	cmd.Execute()
}
