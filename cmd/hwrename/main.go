package main

import "github.com/mydehq/hwrename/internal/cli"

func main() {
	cli.Execute()
}
