package main

import "github.com/innocenzi/dependi/internal/cli"

func main() {
	cli.Execute()
}
