package main

import "aimscope/internal/cmd"

func main() {
	cmd.Execute()
}
