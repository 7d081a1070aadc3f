package main

import "github.com/avoronov/travelog/internal/client/cli"

func main() {
	cli.Execute()
}
