package main

import "github.com/hummuswins/Crux-Compiler/cmd"

func main() {
	cmd.Exec()
}
