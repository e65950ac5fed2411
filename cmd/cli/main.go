package main

import (
	"github.com/mchmarny/modelscore/pkg/cli"
)

func main() {
	cli.Execute()
}
