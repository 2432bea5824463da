package main

import "treevc/cli"

func main() {
	cli.Execute()
}
