package main

import "claudefinder/internal/cli"

func main() {
	cli.Execute()
}
