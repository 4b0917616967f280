package main

import "github.com/tvrenamer/tvrenamer/cmd"

func main() {
	cmd.Execute()
}
