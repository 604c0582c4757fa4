package main

import "github.com/naka-gawa/github-card/cmd"

func main() {
	cmd.Execute()
}
