package main

import "mergedeck/cmd"

func main() {
	cmd.Execute()
}
