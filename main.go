package main

import "github.com/l3uddz/streamarr/cmd"

func main() {
	cmd.Execute()
}
