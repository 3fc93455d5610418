package main

import "github.com/jjenkins/hansard/cmd"

func main() {
	cmd.Execute()
}
