package main

import "jewelbox/internal/cmd"

func main() {
	cmd.Execute()
}
