package main

import "wordbrowse/cmd/wordbrowse-cli/cmd"

func main() {
	cmd.Execute()
}
