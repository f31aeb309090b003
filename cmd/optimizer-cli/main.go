package main

import (
	"github.com/andrescamacho/mission-optimizer-core/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
