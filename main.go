package main

import "github.com/planora-ai/planora/cmd"

func main() {
	cmd.Execute()
}
