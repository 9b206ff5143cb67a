package main

import "github.com/sorakaya/balloonlog/internal/cli"

func main() {
	cli.Execute()
}
