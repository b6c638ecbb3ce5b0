package main

import "chatterly/internal/cmd"

func main() {
	cmd.Run()
}
