package main

import (
	"github.com/gmpwatch/gmpwatch/cmd"
)

func main() {
	cmd.Execute()
}
