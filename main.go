package main

import "github.com/nrgrid/stretchfd/cmd"

func main() {
	cmd.Execute()
}
