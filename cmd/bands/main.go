package main

import "github.com/rustyeddy/bands/internal/cli"

func main() {
	cli.Execute()
}
