package main

import (
	"github.com/ormenio/engine/cmd/engine/commands"
)

func main() {
	commands.Execute()
}
