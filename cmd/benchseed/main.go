package main

import "github.com/marshallshelly/benchseed/cmd/benchseed/commands"

func main() {
	commands.Execute()
}
