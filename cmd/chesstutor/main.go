package main

import (
	"github.com/eslteam/chesstutor/internal/cli"
)

func main() {
	cli.Execute()
}
