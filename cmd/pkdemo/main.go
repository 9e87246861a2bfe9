package main

import "github.com/katalvlaran/pkmodel/internal/cli"

func main() {
	cli.Execute()
}
