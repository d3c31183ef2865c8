package main

import "github.com/FranksOps/skim/cmd"

func main() {
	cmd.Execute()
}
