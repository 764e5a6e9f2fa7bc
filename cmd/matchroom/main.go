package main

import (
	"github.com/mkrella/matchroom/internal/cli"
)

func main() {
	cli.Execute()
}
