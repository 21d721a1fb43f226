package main

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
